package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jusunglee/hanzify/internal/metrics"
)

// RateLimiter admits at most limit requests per key in any sliding window.
// Expired keys are only dropped by Prune, so long-running servers should
// call Run.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether it fits in the window.
// Rejected hits are not recorded.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	live := unexpired(rl.hits[key], now.Add(-rl.window))
	if len(live) >= rl.limit {
		rl.hits[key] = live
		return false
	}
	rl.hits[key] = append(live, now)
	return true
}

// RetryAfter is how long key must wait before its oldest hit leaves the window.
func (rl *RateLimiter) RetryAfter(key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	hits := rl.hits[key]
	if len(hits) == 0 {
		return 0
	}
	return max(0, hits[0].Add(rl.window).Sub(rl.now()))
}

// Prune drops keys with no hits left in the window and returns how many it removed.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	removed := 0
	for key, hits := range rl.hits {
		if len(unexpired(hits, cutoff)) == 0 {
			delete(rl.hits, key)
			removed++
		}
	}
	return removed
}

// Run prunes every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Prune()
		case <-ctx.Done():
			return
		}
	}
}

// unexpired returns the suffix of hits newer than cutoff. Hits are appended in
// time order, so the first live one ends the scan.
func unexpired(hits []time.Time, cutoff time.Time) []time.Time {
	for i, t := range hits {
		if t.After(cutoff) {
			return hits[i:]
		}
	}
	return hits[:0]
}

// RateLimit rejects requests from client IPs over the limiter's budget with 429.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !limiter.Allow(ip) {
				metrics.RateLimitHits.Inc()
				wait := limiter.RetryAfter(ip).Round(time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(wait.Seconds()))))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
