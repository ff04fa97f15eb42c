package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other callers have their own window
	ok, err = limiter.Allow(ctx, "login:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, mr.TTL(keyPrefix+"login:10.0.0.1") > 0)

	mr.FastForward(time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_BackendError(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRedisLimiter(client, 1, time.Minute)

	mr.Close()

	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestMemoryLimiter_Burst(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Hour)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestMemoryLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for _, key := range []string{"login:10.0.0.1", "login:10.0.0.2"} {
		ok, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, limiter.buckets, 2)

	// Still limited within the window, and nothing is dropped yet
	now = now.Add(30 * time.Second)
	ok, _ := limiter.Allow(ctx, "login:10.0.0.1")
	assert.False(t, ok)
	assert.Len(t, limiter.buckets, 2)

	// 10.0.0.2 has been idle for a full window
	now = now.Add(45 * time.Second)
	ok, _ = limiter.Allow(ctx, "login:10.0.0.3")
	assert.True(t, ok)
	assert.Len(t, limiter.buckets, 2)
	assert.NotContains(t, limiter.buckets, "login:10.0.0.2")
	assert.Contains(t, limiter.buckets, "login:10.0.0.1")

	now = now.Add(2 * time.Minute)
	ok, _ = limiter.Allow(ctx, "login:10.0.0.1")
	assert.True(t, ok)
	assert.Len(t, limiter.buckets, 1)
}

func TestLimiterInterface(t *testing.T) {
	var _ Limiter = (*RedisLimiter)(nil)
	var _ Limiter = (*MemoryLimiter)(nil)
}
