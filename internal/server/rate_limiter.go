package server

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window counter keyed by employee. It shields
// the punch endpoints from double-submitted forms and stuck clients.
type rateLimiter struct {
	limit  int
	window time.Duration
	mu     sync.Mutex
	counts map[string]*windowCount
}

type windowCount struct {
	start time.Time
	seen  int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.counts[key]
	if count == nil || now.Sub(count.start) > r.window {
		count = &windowCount{start: now}
		r.counts[key] = count
	}
	if count.seen >= r.limit {
		return false
	}
	count.seen++
	return true
}
