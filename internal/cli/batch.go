package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/pipeline"
	"github.com/kishnakushwaha/VeriFact/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	claimTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple claims from a file",
	Long: `Batch checks multiple claims, a few at a time:
- Read claims from the input file (one per line, # for comments)
- Check claims concurrently with a configurable worker count
- Each check runs the full search, evidence, and verdict pipeline
- Write an individual JSON report per claim plus a batch summary

Each claim still gets the one-claim treatment; the batch command only
saves you from running the tool in a shell loop.

Example:
  verifact batch claims.txt
  verifact batch claims.txt --concurrency 4 --output-dir ./reports
  verifact batch claims.txt --claim-timeout 3m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of claims checked in parallel")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verifact-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&claimTimeout, "claim-timeout", 2*time.Minute, "timeout for individual claims")

	// Inherit flags from check command
	batchCmd.Flags().StringVar(&userAgent, "ua", "VeriFact/1.0 (+https://github.com/kishnakushwaha/VeriFact)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the article cache (force fresh fetches)")
	batchCmd.Flags().BoolVar(&noExplain, "no-explain", false, "omit the reasoning trail from the reports")
	batchCmd.Flags().IntVar(&maxResults, "max-results", 6, "search results per query (1-10)")
	batchCmd.Flags().IntVar(&workers, "workers", 3, "sources analyzed concurrently per claim")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	started := time.Now()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  VeriFact Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := buildConfig(cmd)
	if cfg.Inference.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p := pipeline.NewPipeline(cfg)
	checker := &timedChecker{pipeline: p, timeout: claimTimeout}
	processor := worker.NewBatchProcessor(checker, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading claims from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Checked %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")

	// Write per-claim reports and tally outcomes
	renderer := pipeline.NewRenderer()
	batch := model.BatchReport{StartedAt: started.UTC()}

	for i, result := range results {
		if result.Error != nil {
			batch.Failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", snip(result.Claim), result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, fmt.Sprintf("claim-%03d-%s.json", i+1, slugify(result.Claim)))
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			batch.Failed++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", snip(result.Claim), err)
			continue
		}

		batch.Succeeded++
		batch.Reports = append(batch.Reports, *result.Report)
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%.1f%%)\n",
			snip(result.Claim), result.Report.Verdict, result.Report.Confidence*100)
	}

	// Write the batch summary
	batch.Elapsed = time.Since(started).Seconds()
	summaryPath := filepath.Join(outputDir, "batch.json")
	if err := writeBatchSummary(&batch, summaryPath); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to write batch summary: %v\n", err)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", batch.Succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", batch.Failed)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// timedChecker bounds each claim check with its own timeout.
type timedChecker struct {
	pipeline *pipeline.Pipeline
	timeout  time.Duration
}

func (c *timedChecker) Check(ctx context.Context, claim string) (*model.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.pipeline.Check(ctx, claim)
}

// slugify turns claim text into a safe, readable file name stem.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	out := strings.TrimSuffix(b.String(), "-")
	if len(out) > 60 {
		out = strings.TrimSuffix(out[:60], "-")
	}
	if out == "" {
		out = "claim"
	}
	return out
}

func snip(s string) string {
	const max = 60
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func writeBatchSummary(batch *model.BatchReport, path string) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch summary: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
