package auth_test

import (
	"context"
	"testing"
	"time"

	"creative-evaluator-backend/internal/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter_WindowAndReset(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := auth.NewRedisLimiter(client)
	defer l.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "verify:user@example.com", 3, 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, err := l.Allow(ctx, "verify:user@example.com", 3, 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl := mr.TTL("creative-eval:otp:verify:user@example.com")
	assert.Equal(t, 10*time.Minute, ttl)

	mr.FastForward(10 * time.Minute)
	ok, err = l.Allow(ctx, "verify:user@example.com", 3, 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "window expired")

	require.NoError(t, l.Reset(ctx, "verify:user@example.com"))
	assert.False(t, mr.Exists("creative-eval:otp:verify:user@example.com"))
}

func TestRedisLimiterFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	l, err := auth.NewRedisLimiterFromURL(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer l.Close()

	ok, err := l.Allow(context.Background(), "send:a@example.com", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = auth.NewRedisLimiterFromURL(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestMemoryLimiter(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	l := auth.NewMemoryLimiter().WithClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow(ctx, "k", 2, time.Minute)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "k", 2, time.Minute)
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "other", 2, time.Minute)
	assert.True(t, ok, "keys are independent")

	require.NoError(t, l.Reset(ctx, "k"))
	ok, _ = l.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	for i := 0; i < 2; i++ {
		ok, _ = l.Allow(ctx, "k", 2, time.Minute)
		assert.True(t, ok)
	}
}
