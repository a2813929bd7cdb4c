package agent

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tavagent/internal/models"
	"tavagent/internal/tavily"
	"tavagent/pkg/logger"
)

const (
	headerRule  = "======================================================================"
	contentRule = "----------------------------------------------------------------------"
)

// SearchExtractor is the remote boundary the agents talk to.
type SearchExtractor interface {
	Search(ctx context.Context, query string, opts tavily.SearchOptions) (*models.Envelope, error)
	Extract(ctx context.Context, urls []string, includeRaw bool) (*models.Envelope, error)
}

// Agents bundles the three console operations. Each one normalizes its
// input, forwards a single remote call and writes a readable rendering of
// the response to out. A remote failure is reported on out and returned as
// an error; nothing here panics or retries, so the surrounding shell keeps
// running.
type Agents struct {
	client SearchExtractor
	out    io.Writer
}

// New creates the agent facade writing its output to out.
func New(client SearchExtractor, out io.Writer) *Agents {
	return &Agents{client: client, out: out}
}

// Search runs a web search and prints every result in full. maxResults <= 0
// falls back to the client's configured default.
func (a *Agents) Search(ctx context.Context, query string, maxResults int) (*models.Envelope, error) {
	log := logger.WithRequestID(uuid.NewString())
	log.Info("search agent invoked",
		zap.String("query", query),
		zap.Int("max_results", maxResults),
	)

	fmt.Fprintf(a.out, "\nSEARCH AGENT: searching for %q...\n\n", query)

	envelope, err := a.client.Search(ctx, query, tavily.SearchOptions{MaxResults: maxResults})
	if err != nil {
		log.Error("search failed", zap.Error(err))
		fmt.Fprintf(a.out, "Error in search: %v\n", err)
		return nil, err
	}

	fmt.Fprintf(a.out, "Found %d results:\n", len(envelope.Results))

	for i, result := range envelope.Results {
		if err := a.printResult(i+1, "Result", &result, false); err != nil {
			log.Error("malformed search result", zap.Int("index", i+1), zap.Error(err))
			return nil, err
		}
	}

	log.Info("search agent done", zap.Int("result_count", len(envelope.Results)))
	return envelope, nil
}

// Extract fetches the content of one or more URLs. A single URL and a
// one-element slice are the same call; variadic input keeps the normalized
// request identical either way.
func (a *Agents) Extract(ctx context.Context, urls ...string) (*models.Envelope, error) {
	log := logger.WithRequestID(uuid.NewString())
	log.Info("extract agent invoked", zap.Strings("urls", urls))

	fmt.Fprintf(a.out, "\nEXTRACT AGENT: extracting content from %d URL(s)...\n\n", len(urls))

	envelope, err := a.client.Extract(ctx, urls, true)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		fmt.Fprintf(a.out, "Error in extraction: %v\n", err)
		return nil, err
	}

	for i, result := range envelope.Results {
		if err := a.printResult(i+1, "Extraction", &result, true); err != nil {
			log.Error("malformed extract result", zap.Int("index", i+1), zap.Error(err))
			return nil, err
		}
	}
	a.printFailed(envelope.FailedResults)

	log.Info("extract agent done", zap.Int("result_count", len(envelope.Results)))
	return envelope, nil
}

// Crawl fetches a single page with raw content and prints the first record.
// maxDepth is accepted for interface symmetry only: the extract endpoint
// fetches just the given page, so the value never reaches the wire.
func (a *Agents) Crawl(ctx context.Context, url string, maxDepth int) (*models.Envelope, error) {
	log := logger.WithRequestID(uuid.NewString())
	log.Info("crawl agent invoked",
		zap.String("url", url),
		zap.Int("max_depth", maxDepth),
	)

	fmt.Fprintf(a.out, "\nCRAWL AGENT: crawling %q (depth: %d)...\n\n", url, maxDepth)

	envelope, err := a.client.Extract(ctx, []string{url}, true)
	if err != nil {
		log.Error("crawl failed", zap.Error(err))
		fmt.Fprintf(a.out, "Error in crawling: %v\n", err)
		return nil, err
	}

	if len(envelope.Results) > 0 {
		result := envelope.Results[0]
		if err := a.printResult(1, "Main Page", &result, true); err != nil {
			log.Error("malformed crawl result", zap.Error(err))
			return nil, err
		}
	}
	a.printFailed(envelope.FailedResults)

	log.Info("crawl agent done", zap.Int("result_count", len(envelope.Results)))
	return envelope, nil
}

// printResult renders one record. rawOnly selects the extract-style block
// (raw content only) over the search-style one (raw preferred, summarized
// fallback). A record without a URL is malformed and rejected.
func (a *Agents) printResult(index int, label string, result *models.Result, rawOnly bool) error {
	if result.URL == "" {
		return fmt.Errorf("result #%d has no url", index)
	}

	content := result.DisplayContent()
	if rawOnly {
		content = result.RawContent
	}

	fmt.Fprintf(a.out, "\n%s\n", headerRule)
	fmt.Fprintf(a.out, "%s #%d\n", label, index)
	fmt.Fprintf(a.out, "%s\n", headerRule)
	fmt.Fprintf(a.out, "Title: %s\n", orNA(result.Title))
	fmt.Fprintf(a.out, "URL: %s\n", result.URL)
	if !rawOnly {
		fmt.Fprintf(a.out, "Relevance Score: %s\n", formatScore(result.Score))
	}
	fmt.Fprintf(a.out, "Content Length: %d characters\n", len(content))
	fmt.Fprintf(a.out, "\nFull Content:\n%s\n%s\n%s\n\n", contentRule, content, contentRule)
	return nil
}

func (a *Agents) printFailed(failed []models.FailedResult) {
	for _, f := range failed {
		msg := f.Error
		if msg == "" {
			msg = "fetch failed"
		}
		fmt.Fprintf(a.out, "Failed to extract %s: %s\n", f.URL, msg)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func formatScore(score *float64) string {
	if score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *score)
}
