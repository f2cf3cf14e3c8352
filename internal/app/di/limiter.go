package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"math_solver/internal/shared/ratelimiter"
)

// NewLimiter creates the /solve rate limiter.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process counter. perMinute <= 0 disables limiting.
func NewLimiter(rdb *redis.Client, perMinute int) ratelimiter.Limiter {
	if perMinute <= 0 {
		return nil
	}
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, perMinute, time.Minute, "ratelimit:solve")
	}
	return ratelimiter.NewMemoryLimiter(perMinute, time.Minute)
}
