package fetch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/kishnakushwaha/VeriFact/internal/source"
)

// DomainLimiter rate-limits article fetches per domain so concurrent
// workers cannot hammer a single host.
type DomainLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rps      rate.Limit
	burst    int
}

// NewDomainLimiter creates a limiter applying requestsPerSecond with the
// given burst to every domain independently.
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the URL's domain has clearance.
func (l *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	domain := source.Domain(rawURL)
	if domain == "" {
		return fmt.Errorf("no domain in %q", rawURL)
	}
	return l.limiter(domain).Wait(ctx)
}

// Allow reports whether the URL's domain has clearance right now.
func (l *DomainLimiter) Allow(rawURL string) bool {
	domain := source.Domain(rawURL)
	if domain == "" {
		return false
	}
	return l.limiter(domain).Allow()
}

func (l *DomainLimiter) limiter(domain string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[domain]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock
	if lim, ok := l.limiters[domain]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.rps, l.burst)
	l.limiters[domain] = lim
	return lim
}
