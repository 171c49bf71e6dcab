package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"creator-pricing-workers/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, "ratelimit:", 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 3-i, d.Remaining)
	}
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:203.0.113.7"))

	d, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	mr.FastForward(time.Minute)
	d, err = l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestRedisLimiter_FirstHitSetsExpiry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLimiter(client, "rl:", 10, time.Minute)
	ctx := context.Background()

	mock.ExpectIncr("rl:ip").SetVal(1)
	mock.ExpectExpire("rl:ip", time.Minute).SetVal(true)
	mock.ExpectPTTL("rl:ip").SetVal(time.Minute)

	d, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)

	mock.ExpectIncr("rl:ip").SetVal(11)
	mock.ExpectPTTL("rl:ip").SetVal(20 * time.Second)

	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_RestoresMissingExpiry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLimiter(client, "rl:", 10, time.Minute)

	mock.ExpectIncr("rl:ip").SetVal(4)
	mock.ExpectPTTL("rl:ip").SetVal(-1 * time.Nanosecond)
	mock.ExpectExpire("rl:ip", time.Minute).SetVal(true)

	d, err := l.Allow(context.Background(), "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_BackendError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLimiter(client, "rl:", 10, time.Minute)

	mock.ExpectIncr("rl:ip").SetErr(errors.New("connection refused"))

	_, err := l.Allow(context.Background(), "ip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit incr")
}

func TestNew_SelectsBackend(t *testing.T) {
	l, err := New(config.RateLimitConfig{Backend: config.BackendMemory, Limit: 5, Window: 1000}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryLimiter{}, l)

	_, err = New(config.RateLimitConfig{Backend: config.BackendRedis}, nil)
	assert.Error(t, err)

	_, err = New(config.RateLimitConfig{Backend: "etcd"}, nil)
	assert.Error(t, err)
}
