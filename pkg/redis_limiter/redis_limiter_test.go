package redis_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, max int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, max, "test:", 5*time.Second, nil), mr
}

func TestRedisLimiter_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	rl, mr := newLimiter(t, 1)

	require.NoError(t, rl.Acquire(ctx, "user:1"))
	assert.ErrorIs(t, rl.Acquire(ctx, "user:1"), ErrLimitReached)

	// other keys are independent
	require.NoError(t, rl.Acquire(ctx, "user:2"))

	current, err := rl.GetCurrent(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.True(t, mr.TTL("test:user:1") > 0)

	rl.Release(ctx, "user:1")
	assert.False(t, mr.Exists("test:user:1"))

	require.NoError(t, rl.Acquire(ctx, "user:1"))
}

func TestRedisLimiter_SlotExpires(t *testing.T) {
	ctx := context.Background()
	rl, mr := newLimiter(t, 1)

	require.NoError(t, rl.Acquire(ctx, "user:9"))
	mr.FastForward(6 * time.Second)
	assert.NoError(t, rl.Acquire(ctx, "user:9"))
}

func TestRedisLimiter_MultipleSlots(t *testing.T) {
	ctx := context.Background()
	rl, _ := newLimiter(t, 2)

	require.NoError(t, rl.Acquire(ctx, "k"))
	require.NoError(t, rl.Acquire(ctx, "k"))
	assert.ErrorIs(t, rl.Acquire(ctx, "k"), ErrLimitReached)

	rl.Release(ctx, "k")
	current, err := rl.GetCurrent(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, rl.GetMaxConcurrent())
}

func TestRedisLimiter_GetCurrentMissingKey(t *testing.T) {
	rl, _ := newLimiter(t, 1)
	current, err := rl.GetCurrent(context.Background(), "absent")
	require.NoError(t, err)
	assert.Zero(t, current)
}
