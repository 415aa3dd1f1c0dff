package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts hits per key in fixed windows stored in redis.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow reports whether key is still under the limit, and the current count.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	k := "rl:" + key
	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= rl.limit, n, nil
}

func (rl *RateLimiter) Limit() int64 {
	return rl.limit
}
