package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"tavagent/internal/models"
	"tavagent/pkg/logger"
)

const (
	defaultCrawlDepth = 2

	banner = "============================================================"
)

// AgentRunner is the surface the shell drives. Implementations report their
// own remote failures; the shell only validates input before dispatching.
type AgentRunner interface {
	Search(ctx context.Context, query string, maxResults int) (*models.Envelope, error)
	Extract(ctx context.Context, urls ...string) (*models.Envelope, error)
	Crawl(ctx context.Context, url string, maxDepth int) (*models.Envelope, error)
}

// Shell is the interactive read-menu-dispatch loop. It processes one agent
// call at a time and blocks until it finishes before accepting new input.
type Shell struct {
	agents AgentRunner
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a shell reading user input from in and writing to out.
func New(agents AgentRunner, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		agents: agents,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run drives the menu loop until the user picks exit or input ends.
func (s *Shell) Run(ctx context.Context) {
	fmt.Fprintf(s.out, "%s\n", banner)
	fmt.Fprintf(s.out, "TAVILY AGENT CONSOLE - Three Agent System\n")
	fmt.Fprintf(s.out, "%s\n", banner)

	for {
		s.printMenu()

		choice, ok := s.readLine("\nEnter your choice (1-4): ")
		if !ok {
			// stdin closed; treat like exit
			fmt.Fprintf(s.out, "\nGoodbye!\n")
			return
		}

		switch choice {
		case "1":
			s.runSearch(ctx)
		case "2":
			s.runExtract(ctx)
		case "3":
			s.runCrawl(ctx)
		case "4":
			fmt.Fprintf(s.out, "\nGoodbye!\n")
			return
		default:
			fmt.Fprintf(s.out, "\nInvalid choice. Please select 1-4.\n")
		}

		if !s.pause() {
			return
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintf(s.out, "\n%s\n", banner)
	fmt.Fprintf(s.out, "Select an agent:\n")
	fmt.Fprintf(s.out, "1. Search Agent - Search the web\n")
	fmt.Fprintf(s.out, "2. Extract Agent - Extract content from URL(s)\n")
	fmt.Fprintf(s.out, "3. Crawl Agent - Crawl a website\n")
	fmt.Fprintf(s.out, "4. Exit\n")
	fmt.Fprintf(s.out, "%s\n", banner)
}

func (s *Shell) runSearch(ctx context.Context) {
	query, ok := s.readLine("\nEnter search query: ")
	if !ok {
		return
	}
	if query == "" {
		fmt.Fprintf(s.out, "Search query cannot be empty!\n")
		return
	}
	s.agents.Search(ctx, query, 0)
}

func (s *Shell) runExtract(ctx context.Context) {
	raw, ok := s.readLine("\nEnter URL(s) (comma-separated for multiple): ")
	if !ok {
		return
	}
	if raw == "" {
		fmt.Fprintf(s.out, "URL cannot be empty!\n")
		return
	}
	s.agents.Extract(ctx, SplitURLs(raw)...)
}

func (s *Shell) runCrawl(ctx context.Context) {
	url, ok := s.readLine("\nEnter URL to crawl: ")
	if !ok {
		return
	}
	if url == "" {
		fmt.Fprintf(s.out, "URL cannot be empty!\n")
		return
	}
	s.agents.Crawl(ctx, url, defaultCrawlDepth)
}

// readLine prompts and reads one trimmed line. ok is false once input is
// exhausted.
func (s *Shell) readLine(prompt string) (line string, ok bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			logger.Error("reading input: " + err.Error())
		}
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// pause blocks for one acknowledgment line before the menu is redrawn.
func (s *Shell) pause() bool {
	_, ok := s.readLine("\nPress Enter to continue...")
	return ok
}

// SplitURLs turns comma-separated user input into a trimmed URL list. Empty
// segments from stray commas are dropped.
func SplitURLs(raw string) []string {
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if u := strings.TrimSpace(p); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
