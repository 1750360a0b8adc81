package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/staffdir"
	"golang.org/x/time/rate"
)

var _ staffdir.HostLimiter = (*HostLimiter)(nil)

// DefaultRequestsPerSecond is the default per-host request rate.
const DefaultRequestsPerSecond = 2

// HostLimiter rate limits requests per host using token buckets, so one
// district's server is never hit faster than the configured rate while
// requests to other hosts proceed.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with no bursting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to the host of rawURL is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
