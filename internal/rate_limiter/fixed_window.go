package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/AutoSig/internal/config"
	"go.uber.org/zap"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter allows a number of requests per client in each time
// frame. The counter of a client resets when its window expires.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	frame   time.Duration
	enabled bool
	logger  *zap.SugaredLogger
	// last time expired windows were dropped
	lastSweep time.Time
	// for tests
	now func() time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		enabled: cfg.Enabled,
		logger:  logger,
		now:     time.Now,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.enabled
}

// Allow records a request of key and reports whether it is within the limit.
// When it is not, it also returns how long until the window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		if now.Sub(rl.lastSweep) >= rl.frame {
			rl.sweep(now)
		}
		rl.clients[key] = &window{start: now, count: 1}
		return rl.limit > 0, 0
	}

	if w.count >= rl.limit {
		retryAfter := w.start.Add(rl.frame).Sub(now)
		rl.logger.Debugw("rate limit exceeded", "client", key, "retryAfter", retryAfter)
		return false, retryAfter
	}

	w.count++
	return true, 0
}

// Drop expired windows so idle clients do not accumulate. It runs at most
// once per time frame, caller holds the lock.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	rl.lastSweep = now
	for key, w := range rl.clients {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.clients, key)
		}
	}
}
