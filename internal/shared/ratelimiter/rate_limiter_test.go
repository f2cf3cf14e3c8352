package ratelimiter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryLimiter_Allow はウィンドウ内で上限を超えると拒否し、次のウィンドウで回復することを検証します。
func TestMemoryLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 2 {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i)
	}
	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// 別クライアントは独立
	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

// TestMemoryLimiter_Prune は上限キー数に達したとき期限切れのウィンドウが掃除されることを検証します。
func TestMemoryLimiter_Prune(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Second)
	l.now = func() time.Time { return now }
	for i := range maxTrackedKeys {
		l.windows[fmt.Sprintf("client-%d", i)] = &window{count: 1, start: now}
	}

	now = now.Add(2 * time.Second)
	ok, err := l.Allow(context.Background(), "new-client")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, l.windows, 1)
}
