package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tavagent/internal/agent"
	"tavagent/internal/config"
	"tavagent/internal/shell"
	"tavagent/internal/tavily"
	"tavagent/pkg/logger"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
)

var (
	cfgFile string
	showVer bool

	maxResults int
	crawlDepth int
)

var rootCmd = &cobra.Command{
	Use:   "tavagent",
	Short: "Interactive console for Tavily search, extract and crawl agents",
	Long: `An interactive console wrapping the Tavily web-search API behind
three agents: search the web, extract content from URLs, and crawl a
single page. Requires TAVILY_API_KEY in the environment, a .env file,
or tavily.api_key in the config file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVer {
			fmt.Printf("tavagent %s (built %s)\n", Version, BuildDate)
			return nil
		}

		agents, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		sh := shell.New(agents, os.Stdin, os.Stdout)
		sh.Run(context.Background())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one web search and exit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		_, err = agents.Search(context.Background(), args[0], maxResults)
		return err
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <url> [url...]",
	Short: "Extract content from one or more URLs and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		_, err = agents.Extract(context.Background(), args...)
		return err
	},
}

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Fetch a single page with full raw content and exit",
	Long: `Fetches the given page with full raw content. The --depth flag is
accepted for symmetry with real crawlers but only the page itself is
fetched; deeper link-following is not performed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		_, err = agents.Crawl(context.Background(), args[0], crawlDepth)
		return err
	},
}

// setup loads configuration, validates the credential and wires the agent
// facade. A missing credential aborts here, before any prompt is shown.
func setup() (*agent.Agents, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting tavagent",
		zap.String("version", Version),
		zap.String("base_url", cfg.Tavily.BaseURL),
	)

	client := tavily.NewClient(&cfg.Tavily)
	return agent.New(client, os.Stdout), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.Flags().BoolVarP(&showVer, "version", "v", false, "show version")

	searchCmd.Flags().IntVarP(&maxResults, "max-results", "n", 0, "maximum results (default from config)")
	crawlCmd.Flags().IntVarP(&crawlDepth, "depth", "d", 2, "crawl depth (accepted but not applied)")

	rootCmd.AddCommand(searchCmd, extractCmd, crawlCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
