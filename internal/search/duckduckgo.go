package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/util"
)

const (
	ddgLiteURL = "https://lite.duckduckgo.com/lite/"
	ddgHTMLURL = "https://html.duckduckgo.com/html/"

	// DuckDuckGo serves challenge pages to obvious bot agents.
	ddgUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DuckDuckGo is the credential-free last tier. It scrapes the lite HTML
// frontend and is therefore the slowest and most rate-limit prone, so the
// whole query batch is retried with increasing backoff when limited.
type DuckDuckGo struct {
	liteURL    string
	htmlURL    string
	client     *http.Client
	pace       *rate.Limiter
	maxRetries int
	log        *logrus.Logger
}

// NewDuckDuckGo builds the DuckDuckGo tier from config.
func NewDuckDuckGo(cfg *model.Config, log *logrus.Logger) *DuckDuckGo {
	return &DuckDuckGo{
		liteURL: ddgLiteURL,
		htmlURL: ddgHTMLURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
		},
		pace:       rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
		maxRetries: cfg.Search.MaxRetries,
		log:        log,
	}
}

// Name identifies the tier in logs and reports.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search runs the query batch, retrying the whole batch on rate limits
// with increasing backoff. A batch that stays empty without being rate
// limited is not retried.
func (d *DuckDuckGo) Search(ctx context.Context, queries []string, maxResults int) Outcome {
	rateLimited := false

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		results, limited := d.runBatch(ctx, queries, maxResults)
		if len(results) > 0 {
			return Outcome{Status: StatusSuccess, Results: results}
		}

		rateLimited = limited
		if !limited || ctx.Err() != nil {
			break
		}

		if attempt < d.maxRetries {
			wait := time.Duration(attempt+1) * 5 * time.Second
			d.log.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"wait":    wait,
			}).Warn("DuckDuckGo rate limited, backing off")
			retrySleep(ctx, wait)
		}
	}

	if rateLimited {
		return Outcome{Status: StatusRateLimited, Err: errRateLimited}
	}
	return Outcome{Status: StatusEmpty}
}

// runBatch issues every query once. It reports whether any query was
// cut short by rate limiting.
func (d *DuckDuckGo) runBatch(ctx context.Context, queries []string, maxResults int) ([]model.SearchResult, bool) {
	var results []model.SearchResult
	seen := make(map[string]struct{})
	rateLimited := false

	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		if err := d.pace.Wait(ctx); err != nil {
			break
		}

		items, err := d.searchPage(ctx, d.liteURL, query, maxResults)
		if err != nil {
			if errors.Is(err, errRateLimited) {
				rateLimited = true
			} else {
				d.log.WithField("query", query).WithError(err).Warn("DuckDuckGo query failed")
			}
			continue
		}

		if len(items) == 0 {
			// Secondary mode: lean the query toward news coverage on
			// the full HTML frontend before giving up on it.
			items, err = d.searchPage(ctx, d.htmlURL, query+" news", maxResults)
			if err != nil {
				if errors.Is(err, errRateLimited) {
					rateLimited = true
				}
				continue
			}
		}

		for _, r := range items {
			if _, ok := seen[r.URL]; ok {
				continue
			}
			seen[r.URL] = struct{}{}
			results = append(results, r)
		}
	}

	return results, rateLimited
}

// searchPage posts one query to a DuckDuckGo HTML frontend and parses
// the result list. Both the lite and the full frontend are handled.
func (d *DuckDuckGo) searchPage(ctx context.Context, endpoint, query string, maxResults int) ([]model.SearchResult, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", ddgUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusAccepted, http.StatusForbidden, http.StatusTooManyRequests:
		// Challenge and backoff responses from the anti-bot layer.
		return nil, errRateLimited
	default:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if items := parseLiteResults(doc, maxResults); len(items) > 0 {
		return items, nil
	}
	return parseHTMLResults(doc, maxResults), nil
}

// parseLiteResults reads the table layout of lite.duckduckgo.com.
func parseLiteResults(doc *goquery.Document, maxResults int) []model.SearchResult {
	var items []model.SearchResult

	links := doc.Find("a.result-link")
	snippets := doc.Find("td.result-snippet")

	links.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(items) >= maxResults {
			return false
		}
		target := resolveRedirect(s.AttrOr("href", ""))
		if target == "" {
			return true
		}
		snippet := ""
		if i < snippets.Length() {
			snippet = strings.TrimSpace(snippets.Eq(i).Text())
		}
		items = append(items, model.SearchResult{
			URL:     target,
			Title:   strings.TrimSpace(s.Text()),
			Snippet: snippet,
		})
		return true
	})

	return items
}

// parseHTMLResults reads the div layout of html.duckduckgo.com.
func parseHTMLResults(doc *goquery.Document, maxResults int) []model.SearchResult {
	var items []model.SearchResult

	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(items) >= maxResults {
			return false
		}
		link := s.Find("a.result__a").First()
		target := resolveRedirect(link.AttrOr("href", ""))
		if target == "" {
			return true
		}
		items = append(items, model.SearchResult{
			URL:     target,
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(s.Find("a.result__snippet").First().Text()),
		})
		return true
	})

	return items
}

// resolveRedirect unwraps DuckDuckGo /l/?uddg= redirect links and drops
// ads and non-http targets.
func resolveRedirect(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.Contains(href, "duckduckgo.com/y.js") {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if strings.HasSuffix(parsed.Host, "duckduckgo.com") && strings.HasPrefix(parsed.Path, "/l/") {
		return parsed.Query().Get("uddg")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return href
}
