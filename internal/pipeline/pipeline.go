// Package pipeline wires the full verification flow together: search for
// candidate sources, build evidence from them concurrently, and reduce the
// evidence to a verdict.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/cache"
	"github.com/kishnakushwaha/VeriFact/internal/evidence"
	"github.com/kishnakushwaha/VeriFact/internal/fetch"
	"github.com/kishnakushwaha/VeriFact/internal/inference"
	"github.com/kishnakushwaha/VeriFact/internal/logging"
	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/search"
	"github.com/kishnakushwaha/VeriFact/internal/verdict"
)

// Searcher finds candidate sources for a set of queries. It reports the
// name of the tier that produced the results.
type Searcher interface {
	Search(ctx context.Context, queries []string, maxResults int) ([]model.SearchResult, string)
}

// EvidenceBuilder turns search results into scored evidence.
type EvidenceBuilder interface {
	Build(ctx context.Context, claim string, results []model.SearchResult) ([]model.Evidence, error)
}

// Pipeline orchestrates the complete check process
type Pipeline struct {
	searcher Searcher
	builder  EvidenceBuilder
	engine   *verdict.Engine
	renderer *Renderer
	config   *model.Config
	log      *logrus.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	log := logging.New(os.Stderr, cfg.Output.LogLevel)

	var store cache.Store
	if cfg.Cache.Enabled {
		store = cache.NewMemory(cfg.Cache.TTL)
	}

	inf := inference.NewClient(cfg, log)
	fetcher := fetch.NewFetcher(cfg, store, log)
	extractor := evidence.NewExtractor(cfg, fetcher, inf, inf, log)

	return &Pipeline{
		searcher: search.NewChain(cfg, log),
		builder:  evidence.NewBuilder(cfg, extractor, log),
		engine:   verdict.NewEngine(log),
		renderer: NewRenderer(),
		config:   cfg,
		log:      log,
	}
}

// Check verifies a single claim using the default query variants.
func (p *Pipeline) Check(ctx context.Context, claimText string) (*model.Report, error) {
	return p.CheckWithQueries(ctx, claimText, nil)
}

// CheckWithQueries verifies a claim, searching with the caller's queries.
// With no queries given, the default variants of the claim are searched.
func (p *Pipeline) CheckWithQueries(ctx context.Context, claimText string, queries []string) (*model.Report, error) {
	started := time.Now()

	claim, err := model.NewClaim(claimText)
	if err != nil {
		return nil, fmt.Errorf("invalid claim: %w", err)
	}

	p.log.WithField("claim", snippet(claim.Text, 100)).Info("Checking claim")

	if len(queries) == 0 {
		queries = DefaultQueries(claim.Text)
	}

	// 1. Search for candidate sources
	results, tier := p.searcher.Search(ctx, queries, p.config.Search.MaxResults)

	// 2. Build evidence from the sources concurrently
	evid, err := p.builder.Build(ctx, claim.Text, results)
	if err != nil {
		return nil, fmt.Errorf("build evidence: %w", err)
	}
	if evid == nil {
		evid = []model.Evidence{}
	}

	// 3. Reduce the evidence to a verdict
	result := p.engine.Compute(evid, p.config.Output.Explain)

	elapsed := math.Round(time.Since(started).Seconds()*100) / 100
	p.log.WithFields(logrus.Fields{
		"verdict": result.Verdict,
		"elapsed": elapsed,
	}).Info("Check complete")

	return &model.Report{
		Claim:           claim.Text,
		Verdict:         result.Verdict,
		Confidence:      result.Confidence,
		NetScore:        result.NetScore,
		Explanation:     result.Explanation,
		Evidence:        evid,
		SearchTier:      tier,
		SourcesAnalyzed: len(evid),
		CheckedAt:       started.UTC(),
		Elapsed:         elapsed,
	}, nil
}

// DefaultQueries expands a claim into the standard search variants.
func DefaultQueries(claim string) []string {
	base := strings.ToLower(claim)
	return []string{
		base,
		base + " fact check",
		base + " true or false",
		base + " hoax",
		base + " authenticity check",
	}
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(report)

	return nil
}

func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
