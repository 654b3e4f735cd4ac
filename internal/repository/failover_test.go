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

type mockQuota struct {
	mock.Mock
}

func (m *mockQuota) CheckRateLimit(ctx context.Context, key int64, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverQuotaRepository(t *testing.T) {
	primary := new(mockQuota)
	fallback := new(mockQuota)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverQuotaRepository(primary, fallback, &logger)
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		primary.On("CheckRateLimit", ctx, int64(2), 10, time.Minute).Return(false, errors.New("fail")).Once()
		fallback.On("CheckRateLimit", ctx, int64(2), 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, 2, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("AlreadyDown", func(t *testing.T) {
		fallback.On("CheckRateLimit", ctx, int64(3), 10, time.Minute).Return(false, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, 3, 10, time.Minute)
		assert.NoError(t, err)
		assert.False(t, allowed)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttemptFail", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		primary.On("CheckRateLimit", ctx, int64(4), 10, time.Minute).Return(false, errors.New("still fail")).Once()
		fallback.On("CheckRateLimit", ctx, int64(4), 10, time.Minute).Return(true, nil).Once()

		_, err := repo.CheckRateLimit(ctx, 4, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("Recovery", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		primary.On("CheckRateLimit", ctx, int64(5), 10, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, 5, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
	})
}
