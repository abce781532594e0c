package api

import (
	"sync"
	"time"

	"shareit/internal/config"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepAbove = 10000
)

// rateLimiter keeps one token bucket per caller key.
type rateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	cfg        config.RateLimitConfig
	idleTTL    time.Duration
	sweepAbove int
	now        func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	l := &rateLimiter{
		limiters:   make(map[string]*limiterEntry),
		cfg:        cfg,
		idleTTL:    limiterIdleTTL,
		sweepAbove: limiterSweepAbove,
		now:        time.Now,
	}
	// A bucket idle this long has refilled, so dropping it loses nothing.
	if cfg.RPS > 0 {
		if refill := time.Duration(float64(l.burst()) / cfg.RPS * float64(time.Second)); refill > l.idleTTL {
			l.idleTTL = refill
		}
	}
	return l
}

func (l *rateLimiter) enabled() bool {
	return l != nil && l.cfg.RPS > 0
}

func (l *rateLimiter) burst() int {
	if l.cfg.Burst <= 0 {
		return 5
	}
	return l.cfg.Burst
}

func (l *rateLimiter) allow(key string) bool {
	if !l.enabled() {
		return true
	}
	now := l.now()
	return l.getLimiter(key, now).AllowN(now, 1)
}

func (l *rateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{lim: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.burst())}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	// Drop idle buckets once the map grows.
	if len(l.limiters) > l.sweepAbove {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > l.idleTTL {
				delete(l.limiters, k)
			}
		}
	}

	return entry.lim
}

func (l *rateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
