package repository

import (
	"context"
	"sync"
	"time"
)

type quotaWindow struct {
	count     int
	expiresAt time.Time
}

// MemoryQuotaRepository is a process-local fixed-window counter.
type MemoryQuotaRepository struct {
	mu      sync.Mutex
	windows map[int64]*quotaWindow
	now     func() time.Time
}

func NewMemoryQuotaRepository() *MemoryQuotaRepository {
	return &MemoryQuotaRepository{
		windows: make(map[int64]*quotaWindow),
		now:     time.Now,
	}
}

func (r *MemoryQuotaRepository) CheckRateLimit(_ context.Context, key int64, limit int, window time.Duration) (bool, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = &quotaWindow{expiresAt: now.Add(window)}
		r.windows[key] = w
	}
	w.count++

	return w.count <= limit, nil
}

// Sweep drops expired windows.
func (r *MemoryQuotaRepository) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, w := range r.windows {
		if !now.Before(w.expiresAt) {
			delete(r.windows, key)
			removed++
		}
	}
	return removed
}
