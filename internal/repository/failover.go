package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverQuotaRepository uses the primary until it errors, then serves from the
// fallback and retries the primary once per recovery interval.
type FailoverQuotaRepository struct {
	primary   domain.QuotaRepository
	fallback  domain.QuotaRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverQuotaRepository(primary, fallback domain.QuotaRepository, logger *zerolog.Logger) *FailoverQuotaRepository {
	return &FailoverQuotaRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverQuotaRepository) CheckRateLimit(ctx context.Context, key int64, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			if r.isDown.CompareAndSwap(true, false) {
				r.logger.Info().Msg("primary quota repository recovered")
			}
			return allowed, nil
		}
		if !r.isDown.Swap(true) {
			r.logger.Error().Err(err).Msg("primary quota repository failed, falling back to memory")
		}
		r.lastCheck.Store(r.now().UnixNano())
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}

func (r *FailoverQuotaRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	return r.now().Sub(time.Unix(0, r.lastCheck.Load())) > recoveryInterval
}
