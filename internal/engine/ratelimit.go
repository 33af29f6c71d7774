package engine

import (
	"sync"
	"time"
)

// RateLimiter throttles per-user requests with a fixed cooldown. Disabled by
// default; small groups rarely need it.
type RateLimiter struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	cooldown time.Duration
}

// NewRateLimiter creates a limiter with the given per-user cooldown.
func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		lastSeen: make(map[string]time.Time),
		cooldown: cooldown,
	}
}

// Allow reports whether user may proceed at now, and records the attempt if
// so. A denied attempt does not reset the cooldown.
func (r *RateLimiter) Allow(user string, now time.Time) bool {
	if user == "" {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.lastSeen[user]; ok && now.Sub(last) < r.cooldown {
		return false
	}
	r.lastSeen[user] = now
	return true
}
