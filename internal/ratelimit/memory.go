package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// MemoryLimiter keeps counters in process memory. Limits are per instance, so
// it is only used when Redis is down.
type MemoryLimiter struct {
	store limiter.Store
}

// NewMemoryLimiter builds an in-process limiter store.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: memorystore.NewStore()}
}

// Allow consumes one event for the given key.
func (l *MemoryLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (Result, error) {
	if l == nil || l.store == nil || max <= 0 || window <= 0 {
		return Result{Allowed: true, Remaining: max, Reset: time.Now().Add(window)}, nil
	}
	lctx, err := l.store.Get(ctx, key, limiter.Rate{Period: window, Limit: int64(max)})
	if err != nil {
		return Result{Reset: time.Now().Add(window)}, err
	}
	return Result{
		Allowed:   !lctx.Reached,
		Remaining: int(lctx.Remaining),
		Reset:     time.Unix(lctx.Reset, 0),
	}, nil
}

// Fallback tries the primary store first and degrades to the secondary when
// the primary errors. A primary error is reported through OnError but never
// blocks the request path.
type Fallback struct {
	Primary   Allower
	Secondary Allower
	OnError   func(error)
}

// Allow implements Allower.
func (f Fallback) Allow(ctx context.Context, key string, window time.Duration, max int) (Result, error) {
	if f.Primary != nil {
		res, err := f.Primary.Allow(ctx, key, window, max)
		if err == nil {
			return res, nil
		}
		if f.OnError != nil {
			f.OnError(err)
		}
	}
	if f.Secondary != nil {
		return f.Secondary.Allow(ctx, key, window, max)
	}
	return Result{Allowed: true, Remaining: max, Reset: time.Now().Add(window)}, nil
}
