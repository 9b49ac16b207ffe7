package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/util"
)

const braveURL = "https://api.search.brave.com/res/v1/web/search"

// Brave is the second search tier. The free plan allows roughly one
// request per second, hence the conservative pacing.
type Brave struct {
	apiKey  string
	baseURL string
	client  *http.Client
	pace    *rate.Limiter
	log     *logrus.Logger
}

// NewBrave builds the Brave tier from config.
func NewBrave(cfg *model.Config, log *logrus.Logger) *Brave {
	return &Brave{
		apiKey:  cfg.Search.BraveKey,
		baseURL: braveURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		pace: rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
		log:  log,
	}
}

// Name identifies the tier in logs and reports.
func (b *Brave) Name() string { return "brave" }

type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs every query sequentially with first-seen URL dedup.
func (b *Brave) Search(ctx context.Context, queries []string, maxResults int) Outcome {
	if b.apiKey == "" {
		return Outcome{Status: StatusUnavailable}
	}

	var results []model.SearchResult
	seen := make(map[string]struct{})

	for _, query := range queries {
		if err := b.pace.Wait(ctx); err != nil {
			break
		}

		items, err := b.searchOne(ctx, query, maxResults)
		if err != nil {
			b.log.WithField("query", query).WithError(err).Warn("Brave query failed")
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

func (b *Brave) searchOne(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
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

	var decoded braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]model.SearchResult, 0, len(decoded.Web.Results))
	for _, r := range decoded.Web.Results {
		if r.URL == "" {
			continue
		}
		items = append(items, model.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Description,
		})
	}
	return items, nil
}
