package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverRateLimitStore(t *testing.T) {
	primary := new(mockStore)
	fallback := new(mockStore)
	logger := zerolog.New(io.Discard)
	store := NewFailoverRateLimitStore(primary, fallback, &logger)
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary.On("CheckRateLimit", ctx, "user:1", 5, time.Minute).Return(true, nil).Once()

		allowed, err := store.CheckRateLimit(ctx, "user:1", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		primary.On("CheckRateLimit", ctx, "user:2", 5, time.Minute).Return(false, errors.New("fail")).Once()
		fallback.On("CheckRateLimit", ctx, "user:2", 5, time.Minute).Return(false, nil).Once()

		allowed, err := store.CheckRateLimit(ctx, "user:2", 5, time.Minute)
		assert.NoError(t, err)
		assert.False(t, allowed)
		assert.True(t, store.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackBeforeInterval", func(t *testing.T) {
		now = now.Add(30 * time.Second)
		fallback.On("CheckRateLimit", ctx, "user:3", 5, time.Minute).Return(true, nil).Once()

		allowed, err := store.CheckRateLimit(ctx, "user:3", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertNotCalled(t, "CheckRateLimit", ctx, "user:3", 5, time.Minute)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		primary.On("CheckRateLimit", ctx, "user:4", 5, time.Minute).Return(true, nil).Once()

		allowed, err := store.CheckRateLimit(ctx, "user:4", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.False(t, store.isDown.Load())
		primary.AssertExpectations(t)
	})
}
