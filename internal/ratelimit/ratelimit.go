package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	maxClients = 4096
	idleTTL    = 30 * time.Minute
)

// Limiter decides whether a client may start another scrape.
type Limiter interface {
	Allow(clientKey string) bool
}

// InMemoryLimiter keeps one token bucket per client key. Buckets of clients
// idle for longer than idleTTL are forgotten.
type InMemoryLimiter struct {
	clients *expirable.LRU[string, *rate.Limiter]
	mu      sync.Mutex
	r       rate.Limit // token refill rate
	b       int        // bucket size
}

// NewInMemoryLimiter allows requests per period with the given burst.
// Example: NewInMemoryLimiter(5, time.Minute, 2) refills one token every 12s, two at once.
// requests <= 0 disables limiting.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	r := rate.Inf
	if requests > 0 && per > 0 {
		r = rate.Every(per / time.Duration(requests))
	}
	if burst <= 0 {
		burst = 1
	}
	return &InMemoryLimiter{
		clients: expirable.NewLRU[string, *rate.Limiter](maxClients, nil, idleTTL),
		r:       r,
		b:       burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) Allow(clientKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.clients.Get(clientKey)
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
	}
	// Re-adding refreshes the idle expiry.
	l.clients.Add(clientKey, limiter)

	return limiter.Allow()
}
