package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimitStore is the single-process fallback for the Redis counter.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	windows map[string]*rateLimitEntry
	now     func() time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		windows: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (r *MemoryRateLimitStore) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.windows[key]
	if !ok || !now.Before(entry.expiresAt) {
		entry = &rateLimitEntry{expiresAt: now.Add(window)}
		r.windows[key] = entry
	}
	entry.count++

	// Drop expired windows once the map grows.
	if len(r.windows) > 10000 {
		for k, e := range r.windows {
			if !now.Before(e.expiresAt) {
				delete(r.windows, k)
			}
		}
	}

	return entry.count <= limit, nil
}
