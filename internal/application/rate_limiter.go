package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
)

// RateLimitEntry is one identifier's window.
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter is a fixed-window limiter keyed by client identifier (usually the
// remote IP). Expired windows are dropped by Cleanup, which the sweeper runs.
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.RWMutex
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewRateLimiter allows limit requests per identifier within each window.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow records a request and fails with domain.ErrRateLimited once the window is full.
func (rl *RateLimiter) Allow(identifier string) error {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return nil
	}

	if entry.Count >= rl.limit {
		timeUntilReset := entry.ResetTime.Sub(now)
		return fmt.Errorf("%w: try again in %v", domain.ErrRateLimited, timeUntilReset.Round(time.Second))
	}

	entry.Count++
	return nil
}

// GetRemaining returns how many requests identifier has left in its window.
func (rl *RateLimiter) GetRemaining(identifier string) int {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.RLock()
	defer rl.mu.RUnlock()

	entry, exists := rl.limits[identifier]
	if !exists || rl.now().After(entry.ResetTime) {
		return rl.limit
	}
	return max(rl.limit-entry.Count, 0)
}

func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limits, identifier)
}

// Cleanup drops expired windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
		}
	}
}

func (rl *RateLimiter) Size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limits)
}
