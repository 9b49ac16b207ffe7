package evidence

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// Builder fans search results out to the extractor with bounded
// concurrency. Results keep the order of the search results regardless of
// which source finished first, so reports are stable across runs.
type Builder struct {
	extractor  *Extractor
	maxWorkers int
	log        *logrus.Logger
}

// NewBuilder creates a builder running at most cfg.Evidence.Workers
// extractions at once.
func NewBuilder(cfg *model.Config, extractor *Extractor, log *logrus.Logger) *Builder {
	maxWorkers := cfg.Evidence.Workers
	if maxWorkers <= 0 {
		maxWorkers = 3
	}

	return &Builder{
		extractor:  extractor,
		maxWorkers: maxWorkers,
		log:        log,
	}
}

// Build extracts evidence from every search result. Sources that fail or
// yield nothing are skipped; a run only errors when the context dies.
func (b *Builder) Build(ctx context.Context, claim string, results []model.SearchResult) ([]model.Evidence, error) {
	if len(results) == 0 {
		return nil, nil
	}

	slots := make([]*model.Evidence, len(results))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, b.maxWorkers)

	for i, result := range results {
		wg.Add(1)
		go func(idx int, r model.SearchResult) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			ev, err := b.extractor.Extract(ctx, claim, r)
			if err != nil {
				b.log.WithError(err).WithField("url", r.URL).Warn("Skipping source")
				return
			}
			slots[idx] = ev
		}(i, result)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	evidence := make([]model.Evidence, 0, len(results))
	for _, ev := range slots {
		if ev != nil {
			evidence = append(evidence, *ev)
		}
	}

	b.log.WithFields(logrus.Fields{
		"sources":  len(results),
		"evidence": len(evidence),
	}).Debug("Evidence collection finished")

	return evidence, nil
}
