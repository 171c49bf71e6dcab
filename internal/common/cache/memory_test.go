package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestNextMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"late evening", time.Date(2026, 3, 10, 22, 30, 0, 0, loc), time.Date(2026, 3, 11, 0, 0, 0, 0, loc)},
		{"exactly midnight", time.Date(2026, 3, 10, 0, 0, 0, 0, loc), time.Date(2026, 3, 11, 0, 0, 0, 0, loc)},
		{"month rollover", time.Date(2026, 1, 31, 9, 0, 0, 0, loc), time.Date(2026, 2, 1, 0, 0, 0, 0, loc)},
		{"year rollover", time.Date(2026, 12, 31, 23, 59, 59, 0, loc), time.Date(2027, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(NextMidnight(tt.now)))
		})
	}
}

func TestMemoryStore_SameDayHit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(0, clock.Now)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "brandvet:a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "brandvet:a", []byte(`{"trustScore":72}`)))

	clock.Advance(14*time.Hour + 59*time.Minute)
	val, ok, err := store.Get(ctx, "brandvet:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"trustScore":72}`, string(val))
}

func TestMemoryStore_ExpiresAtMidnight(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(0, clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	clock.Advance(time.Hour)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_ValueIsCopied(t *testing.T) {
	store := NewMemoryStore(0, nil)
	ctx := context.Background()

	buf := []byte("original")
	require.NoError(t, store.Set(ctx, "k", buf))
	buf[0] = 'X'

	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "original", string(val))

	val[0] = 'Y'
	again, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "original", string(again))
}

func TestMemoryStore_Evict(t *testing.T) {
	store := NewMemoryStore(0, nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Evict(ctx, "k"))
	require.NoError(t, store.Evict(ctx, "missing"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_SweepsStaleEntriesAboveLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(3, clock.Now)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("old-%d", i), []byte("v")))
	}
	assert.Equal(t, 4, store.Len())

	// next day: every old entry is stale, and the map is over the limit
	clock.Advance(24 * time.Hour)
	require.NoError(t, store.Set(ctx, "fresh", []byte("v")))
	assert.Equal(t, 1, store.Len())

	_, ok, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_NoSweepAtOrBelowLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(3, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("old-%d", i), []byte("v")))
	}
	clock.Advance(24 * time.Hour)
	require.NoError(t, store.Set(ctx, "fresh", []byte("v")))

	// stale entries stay until a write finds the map over the limit
	assert.Equal(t, 4, store.Len())
}
