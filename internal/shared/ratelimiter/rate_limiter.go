// Package ratelimiter はクライアントごとのリクエスト頻度を固定ウィンドウで制限します。
package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Limiter はkeyに対する1回の呼び出しを許可するか判定します。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// maxTrackedKeys を超えたら期限切れのウィンドウを掃除します。
const maxTrackedKeys = 10000

type window struct {
	count int
	start time.Time
}

// MemoryLimiter はプロセス内のカウンタで制限します。Redisが使えない場合の代替です。
type MemoryLimiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // ウィンドウの長さ
	windows  map[string]*window
	now      func() time.Time
}

// NewMemoryLimiter は新しいMemoryLimiterのインスタンスを生成します。
func NewMemoryLimiter(limit int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はkeyのカウントを1増やし、上限以内ならtrueを返します。
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.start) >= l.interval {
		if !ok && len(l.windows) >= maxTrackedKeys {
			l.prune(now)
		}
		w = &window{start: now}
		l.windows[key] = w
	}

	w.count++
	return w.count <= l.limit, nil
}

func (l *MemoryLimiter) prune(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, k)
		}
	}
}
