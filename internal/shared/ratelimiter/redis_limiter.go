package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter は複数インスタンス間でカウンタを共有する固定ウィンドウ制限です。
// キーは "<prefix>:<key>:<window番号>" で、最初のINCRでTTLを設定します。
type RedisLimiter struct {
	rdb      *redis.Client
	limit    int
	interval time.Duration
	prefix   string
	now      func() time.Time
}

// NewRedisLimiter creates a RedisLimiter. If prefix is empty, it uses "ratelimit".
func NewRedisLimiter(rdb *redis.Client, limit int, interval time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if interval < time.Second {
		interval = time.Second
	}
	return &RedisLimiter{
		rdb:      rdb,
		limit:    limit,
		interval: interval,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Allow increments the counter for key in the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.interval).Err(); err != nil {
			slog.Warn("failed to set rate limit ttl", "key", k, "error", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *RedisLimiter) windowKey(key string) string {
	slot := l.now().Unix() / int64(l.interval/time.Second)
	// IPv6のコロンはキー区切りと紛らわしいので置換する
	return fmt.Sprintf("%s:%s:%d", l.prefix, strings.ReplaceAll(key, ":", "_"), slot)
}
