// Package search implements the tiered web search chain that gathers
// candidate sources for a claim.
//
// Tiers are tried strictly in priority order: Tavily, then Brave, then
// DuckDuckGo. The first tier to return any results wins outright; results
// from different tiers are never merged. Queries run sequentially within
// a tier so each provider's rate limit is respected.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kishnakushwaha/VeriFact/internal/model"
)

// Sentinel failures providers map HTTP statuses onto.
var (
	errAuthRejected = errors.New("credentials rejected")
	errRateLimited  = errors.New("rate limited")
)

// Caps applied to every tier.
const (
	MaxQueries    = 10 // Queries accepted per chain call
	MaxResultsCap = 10 // Per-query result ceiling
)

// Status describes how a tier attempt concluded.
type Status int

const (
	StatusSuccess     Status = iota // At least one result
	StatusEmpty                     // Completed with no results
	StatusUnavailable               // Missing or rejected credentials
	StatusRateLimited               // Gave up because of rate limiting
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusUnavailable:
		return "unavailable"
	case StatusRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Outcome is the typed conclusion of one tier attempt. Err carries detail
// for logging only; the chain never surfaces it to callers.
type Outcome struct {
	Status  Status
	Results []model.SearchResult
	Err     error
}

// Provider is one search backend in the fallback chain. Search runs all
// queries sequentially and merges their results with URL-level dedup,
// first seen wins.
type Provider interface {
	Name() string
	Search(ctx context.Context, queries []string, maxResults int) Outcome
}

// Chain tries providers in fixed priority order.
type Chain struct {
	providers []Provider
	log       *logrus.Logger
}

// NewChain builds the standard three-tier chain from config.
func NewChain(cfg *model.Config, log *logrus.Logger) *Chain {
	return NewChainWith(log,
		NewTavily(cfg, log),
		NewBrave(cfg, log),
		NewDuckDuckGo(cfg, log),
	)
}

// NewChainWith assembles a chain over explicit providers.
func NewChainWith(log *logrus.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, log: log}
}

// Search returns the winning tier's results along with its name.
// Total failure across every tier yields an empty slice, never an error.
func (c *Chain) Search(ctx context.Context, queries []string, maxResults int) ([]model.SearchResult, string) {
	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}
	if maxResults < 1 {
		maxResults = 1
	} else if maxResults > MaxResultsCap {
		maxResults = MaxResultsCap
	}

	for _, p := range c.providers {
		if ctx.Err() != nil {
			c.log.WithError(ctx.Err()).Warn("Search aborted")
			return nil, ""
		}

		outcome := p.Search(ctx, queries, maxResults)
		switch outcome.Status {
		case StatusSuccess:
			c.log.WithFields(logrus.Fields{
				"tier":    p.Name(),
				"results": len(outcome.Results),
			}).Info("Search tier succeeded")
			return outcome.Results, p.Name()
		case StatusUnavailable:
			c.log.WithField("tier", p.Name()).Debug("Search tier unavailable, trying next")
		case StatusRateLimited:
			c.log.WithField("tier", p.Name()).Warn("Search tier rate limited, trying next")
		default:
			if outcome.Err != nil {
				c.log.WithField("tier", p.Name()).WithError(outcome.Err).Warn("Search tier failed, trying next")
			} else {
				c.log.WithField("tier", p.Name()).Info("Search tier returned nothing, trying next")
			}
		}
	}

	return nil, ""
}

// retrySleep pauses between retry attempts. Swapped out in tests.
var retrySleep = sleepContext

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
