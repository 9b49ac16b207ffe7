// Package evidence turns search results into stance-scored evidence.
//
// Each source is fetched, split into sentences, ranked against the claim
// and stance-classified. Sources below the relevance floor are kept as
// neutral evidence without ever invoking the classifier.
package evidence

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/inference"
	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/source"
	"github.com/kishnakushwaha/VeriFact/internal/textutil"
)

// ArticleFetcher retrieves the readable text of a page.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// SimilarityRanker scores sentences against a claim and returns the best.
type SimilarityRanker interface {
	TopMatches(ctx context.Context, claim string, sentences []string, topN int) ([]inference.Match, error)
}

// StanceClassifier labels one sentence's relation to a claim.
type StanceClassifier interface {
	ClassifyStance(ctx context.Context, claim, sentence string) (model.StanceResult, error)
}

// Extractor turns one search result into at most one evidence item.
type Extractor struct {
	fetcher    ArticleFetcher
	ranker     SimilarityRanker
	classifier StanceClassifier
	sources    *source.Table
	topN       int
	minSim     float64
	log        *logrus.Logger
}

// NewExtractor creates an extractor from the evidence section of the
// configuration.
func NewExtractor(cfg *model.Config, fetcher ArticleFetcher, ranker SimilarityRanker, classifier StanceClassifier, log *logrus.Logger) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		ranker:     ranker,
		classifier: classifier,
		sources:    source.NewTable(),
		topN:       cfg.Evidence.TopSentences,
		minSim:     cfg.Evidence.MinSimilarity,
		log:        log,
	}
}

// Extract processes one search result. A nil evidence with nil error means
// the source had nothing usable.
func (e *Extractor) Extract(ctx context.Context, claim string, result model.SearchResult) (*model.Evidence, error) {
	if result.URL == "" {
		return nil, nil
	}

	text, err := e.fetcher.Fetch(ctx, result.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	matches, err := e.ranker.TopMatches(ctx, claim, sentences, e.topN)
	if err != nil {
		return nil, fmt.Errorf("rank sentences: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	best := matches[0]
	ev := &model.Evidence{
		URL:          result.URL,
		Title:        result.Title,
		BestSentence: best.Sentence,
		Similarity:   best.Similarity,
		SourceWeight: e.sources.Weight(result.URL),
		SocialMedia:  e.sources.IsSocialMedia(result.URL),
	}

	// Below the relevance floor the source stays neutral and the
	// classifier is never called.
	if best.Similarity < e.minSim {
		e.log.WithFields(logrus.Fields{
			"url":        result.URL,
			"similarity": fmt.Sprintf("%.2f", best.Similarity),
		}).Debug("Skipping stance detection for low-similarity source")
		ev.Stance = model.StanceDiscusses
		ev.StanceScore = 0
		return ev, nil
	}

	var stances []model.SentenceStance
	for _, match := range matches {
		if match.Similarity < e.minSim {
			continue
		}

		stance, err := e.classifier.ClassifyStance(ctx, claim, match.Sentence)
		if err != nil {
			// Keep the neutral result; one bad sentence should not
			// discard the source.
			e.log.WithError(err).WithField("url", result.URL).Warn("Stance classification failed")
		}

		stances = append(stances, model.SentenceStance{
			Sentence:   match.Sentence,
			Similarity: match.Similarity,
			Stance:     stance.Label,
			Confidence: stance.Confidence,
		})
	}

	agg := AggregateStances(stances)
	ev.Stance = agg.Label
	ev.StanceScore = agg.Confidence
	if len(stances) > 1 {
		ev.SupportingSentences = stances[1:]
	}

	return ev, nil
}
