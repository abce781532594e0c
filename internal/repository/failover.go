package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverRateLimitStore uses primary until it errors, then serves from
// fallback and retries primary once per recoveryInterval.
type FailoverRateLimitStore struct {
	primary   domain.RateLimitStore
	fallback  domain.RateLimitStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverRateLimitStore(primary, fallback domain.RateLimitStore, logger *zerolog.Logger) *FailoverRateLimitStore {
	return &FailoverRateLimitStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverRateLimitStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() || r.recoveryDue() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			if r.isDown.CompareAndSwap(true, false) {
				r.logger.Info().Msg("Primary rate limit store recovered")
			}
			return allowed, nil
		}
		if !r.isDown.Swap(true) {
			r.logger.Error().Err(err).Msg("Primary rate limit store failed, falling back to memory")
		}
		r.lastCheck.Store(r.now().UnixNano())
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}

func (r *FailoverRateLimitStore) recoveryDue() bool {
	last := time.Unix(0, r.lastCheck.Load())
	return r.now().Sub(last) > recoveryInterval
}
