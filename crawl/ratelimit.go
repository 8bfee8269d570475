package crawl

import (
	"context"
	"net"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/natmusissunny/legalrights"
	"golang.org/x/time/rate"
)

var _ legalrights.DomainLimiter = (*DomainLimiter)(nil)

// DefaultMaxDomains bounds how many per-host limiters are kept. The least
// recently used host loses its bucket and starts fresh on its next request.
const DefaultMaxDomains = 256

// DomainLimiter paces requests per host with one token bucket each, so
// fetches to different sites proceed concurrently while each site sees
// at most rps requests per second.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rps      float64
	burst    int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst allows up to n back-to-back requests per host. Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	// lru.New only fails for a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](DefaultMaxDomains)
	d := &DomainLimiter{
		limiters: limiters,
		rps:      rps,
		burst:    1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to domain is allowed or ctx is done.
// domain may carry a port and any letter case; "www.12333.gov.cn:443" and
// "WWW.12333.gov.cn" share a bucket.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := hostKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters.Add(key, limiter)
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Len returns the number of hosts currently tracked.
func (d *DomainLimiter) Len() int {
	return d.limiters.Len()
}

func hostKey(domain string) string {
	if host, _, err := net.SplitHostPort(domain); err == nil {
		domain = host
	}
	return strings.ToLower(strings.TrimSuffix(domain, "."))
}
