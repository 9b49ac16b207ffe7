package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/pipeline"
)

var (
	outJSON      string
	checkTimeout time.Duration
	fetchTimeout time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	insecureTLS  bool
	ignoreRobots bool
	noExplain    bool
	queries      []string
	maxResults   int
	workers      int
	embedModel   string
	stanceModel  string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Check a single factual claim against live web evidence",
	Long: `Check verifies one factual claim:
- Search tiered web providers for coverage of the claim
- Pull each source's most relevant sentences by semantic similarity
- Classify every sentence's stance toward the claim
- Weigh the evidence by source credibility and produce a verdict

Requires OPENAI_API_KEY for similarity and stance scoring. TAVILY_API_KEY
and BRAVE_API_KEY unlock the higher-priority search tiers; without them
the free tier is used.

Example:
  verifact check "The Eiffel Tower is taller than 300 metres"
  verifact check "Vitamin C cures the common cold" --json verdict.json
  verifact check "NASA found water on the moon" --query "nasa moon water discovery"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the full JSON report to this path")
	checkCmd.Flags().BoolVar(&noExplain, "no-explain", false, "omit the reasoning trail from the report")

	// Search and evidence flags
	checkCmd.Flags().StringArrayVar(&queries, "query", nil, "search query to use instead of the built-in variants (repeatable)")
	checkCmd.Flags().IntVar(&maxResults, "max-results", 6, "search results per query (1-10)")
	checkCmd.Flags().IntVar(&workers, "workers", 3, "sources analyzed concurrently")

	// HTTP flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", 8*time.Second, "timeout per article fetch")
	checkCmd.Flags().StringVar(&userAgent, "ua", "VeriFact/1.0 (+https://github.com/kishnakushwaha/VeriFact)", "HTTP User-Agent")
	checkCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per article")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the article cache (force fresh fetches)")
	checkCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	checkCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "fetch articles even where robots.txt disallows it")

	// Model flags
	checkCmd.Flags().StringVar(&embedModel, "embed-model", "text-embedding-3-small", "embedding model for similarity ranking")
	checkCmd.Flags().StringVar(&stanceModel, "stance-model", "gpt-4o-mini", "chat model for stance classification")
}

// applyFlags overlays explicitly set command flags onto the config.
// Flags the user did not touch leave file and environment settings alone.
func applyFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()

	if flags.Changed("fetch-timeout") {
		cfg.HTTP.Timeout = fetchTimeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("ignore-robots") {
		cfg.HTTP.RespectRobots = !ignoreRobots
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-explain") {
		cfg.Output.Explain = !noExplain
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = maxResults
	}
	if flags.Changed("workers") {
		cfg.Evidence.Workers = workers
	}
	if flags.Changed("embed-model") {
		cfg.Inference.EmbedModel = embedModel
	}
	if flags.Changed("stance-model") {
		cfg.Inference.StanceModel = stanceModel
	}
	cfg.Output.Verbose = verbose
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := buildConfig(cmd)
	if cfg.Inference.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)

	report, err := p.CheckWithQueries(ctx, claim, queries)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Search tier: %s\n", orNone(report.SearchTier))
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d sources\n", report.SourcesAnalyzed)
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
