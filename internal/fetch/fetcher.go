// Package fetch retrieves article pages and reduces them to plain text.
//
// Every outbound request passes the same gauntlet: cache lookup, robots.txt
// check, per-domain rate limit, size-capped download, then readability
// extraction with a bare text-node walk as fallback.
package fetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/kishnakushwaha/VeriFact/internal/cache"
	"github.com/kishnakushwaha/VeriFact/internal/model"
	"github.com/kishnakushwaha/VeriFact/internal/util"
)

const (
	maxRedirects = 3

	// Readability can succeed on boilerplate shells; anything shorter
	// than this falls back to the raw text walk.
	minReadableChars = 100
)

// Fetcher downloads pages and extracts their readable text.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	robots    *RobotsChecker
	limiter   *DomainLimiter
	store     cache.Store
	cacheTTL  time.Duration
	log       *logrus.Logger
}

// NewFetcher creates a Fetcher from the HTTP section of the configuration.
// A nil store disables article caching.
func NewFetcher(cfg *model.Config, store cache.Store, log *logrus.Logger) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := &http.Client{
		Timeout:   cfg.HTTP.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	f := &Fetcher{
		client:    client,
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		limiter:   NewDomainLimiter(cfg.HTTP.PerDomainRPS, cfg.HTTP.PerDomainBurst),
		store:     store,
		cacheTTL:  cfg.Cache.TTL,
		log:       log,
	}
	if cfg.HTTP.RespectRobots {
		f.robots = NewRobotsChecker(cfg.HTTP.UserAgent, client)
	}
	return f
}

// Fetch downloads rawURL and returns its readable text. Disallowed,
// oversized, non-textual and unreadable pages all come back as errors so
// the caller can simply skip the source.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.store != nil {
		if text, ok := f.store.Get(key); ok {
			f.log.WithField("url", rawURL).Debug("Article cache hit")
			return string(text), nil
		}
	}

	if f.robots != nil && !f.robots.CanFetch(ctx, rawURL) {
		return "", fmt.Errorf("robots.txt disallows %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	body, finalURL, err := f.download(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := extractText(body, finalURL)
	if text == "" {
		return "", fmt.Errorf("no readable text at %s", rawURL)
	}

	if f.store != nil {
		f.store.Set(key, []byte(text), f.cacheTTL)
	}
	return text, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	if ctype := resp.Header.Get("Content-Type"); !isTextual(ctype) {
		return nil, nil, fmt.Errorf("unsupported content type %q", ctype)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	return body, resp.Request.URL, nil
}

// isTextual reports whether the content type can hold article text.
// A missing header is treated as HTML.
func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml" || mediaType == "application/xml":
		return true
	}
	return false
}

// extractText runs readability over the page and falls back to walking the
// visible text nodes when readability fails or yields next to nothing.
func extractText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil {
		if text := normalizeSpace(article.TextContent); len(text) >= minReadableChars {
			return text
		}
	}
	return normalizeSpace(visibleText(body))
}

// visibleText extracts text nodes from HTML, skipping script, style and
// page-furniture tags.
func visibleText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return buf.String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
