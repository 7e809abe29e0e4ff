// Package ratelimit provides sliding window rate limiting for the HTTP API.
// Redis sorted sets are the primary store; an in-process store takes over when
// Redis is unreachable so the API keeps serving with best-effort limits.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result reports the outcome of a single limit check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Allower is implemented by every limiter store.
type Allower interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (Result, error)
}

// RedisLimiter implements a sliding window limiter backed by Redis sorted sets.
type RedisLimiter struct {
	Client *redis.Client
	Prefix string
}

// Allow registers an event for the given key and returns whether it is within the limit.
func (l RedisLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (Result, error) {
	if l.Client == nil || max <= 0 || window <= 0 {
		return Result{Allowed: true, Remaining: max, Reset: time.Now().Add(window)}, nil
	}

	now := time.Now()
	until := now.Add(window)
	score := float64(now.UnixNano())
	cutoff := float64(now.Add(-window).UnixNano())

	redisKey := l.Prefix + key
	member := fmt.Sprintf("%s:%s", key, uuid.NewString())

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("%f", cutoff))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: score, Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{Reset: until}, err
	}

	current := int(countCmd.Val())
	remaining := max - current
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: current <= max, Remaining: remaining, Reset: until}, nil
}
