package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/util"
)

const tavilyURL = "https://api.tavily.com/search"

// Tavily is the first search tier: best quality, needs an API key.
type Tavily struct {
	apiKey  string
	baseURL string
	client  *http.Client
	pace    *rate.Limiter
	log     *logrus.Logger
}

// NewTavily builds the Tavily tier from config. The tier reports itself
// unavailable when no API key is configured.
func NewTavily(cfg *model.Config, log *logrus.Logger) *Tavily {
	return &Tavily{
		apiKey:  cfg.Search.TavilyKey,
		baseURL: tavilyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		pace: rate.NewLimiter(rate.Every(300*time.Millisecond), 1),
		log:  log,
	}
}

// Name identifies the tier in logs and reports.
func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	Query       string `json:"query"`
	APIKey      string `json:"api_key"`
	SearchDepth string `json:"search_depth,omitempty"` // "basic" or "advanced"
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs every query sequentially, pacing calls to stay inside the
// API rate limit, and merges results with first-seen URL dedup.
func (t *Tavily) Search(ctx context.Context, queries []string, maxResults int) Outcome {
	if t.apiKey == "" {
		return Outcome{Status: StatusUnavailable}
	}

	var results []model.SearchResult
	seen := make(map[string]struct{})

	for _, query := range queries {
		if err := t.pace.Wait(ctx); err != nil {
			break
		}

		items, err := t.searchOne(ctx, query, maxResults)
		if err != nil {
			t.log.WithField("query", query).WithError(err).Warn("Tavily query failed")
			if errors.Is(err, errAuthRejected) {
				if len(results) == 0 {
					return Outcome{Status: StatusUnavailable, Err: err}
				}
				break
			}
			if errors.Is(err, errRateLimited) {
				if len(results) == 0 {
					return Outcome{Status: StatusRateLimited, Err: err}
				}
				break
			}
			continue
		}

		for _, r := range items {
			if _, ok := seen[r.URL]; ok {
				continue
			}
			seen[r.URL] = struct{}{}
			results = append(results, r)
		}
	}

	if len(results) == 0 {
		return Outcome{Status: StatusEmpty}
	}
	return Outcome{Status: StatusSuccess, Results: results}
}

func (t *Tavily) searchOne(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		Query:       query,
		APIKey:      t.apiKey,
		SearchDepth: "advanced",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errAuthRejected
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]model.SearchResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.URL == "" {
			continue
		}
		items = append(items, model.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Content,
		})
	}
	return items, nil
}
