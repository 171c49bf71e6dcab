// Package cache stores brand-vet results for the rest of the local day.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creator-pricing-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps backend failures so callers can degrade to a cache miss.
var ErrUnavailable = errors.New("cache unavailable")

// Store is the get/set/evict surface the brand vetter depends on. Entries
// expire at the next local midnight after they are written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Evict(ctx context.Context, key string) error
}

// NextMidnight returns the first instant of the day after now, in now's location.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// New builds the store selected by cfg.Backend. rdb is only required for the
// redis backend.
func New(cfg config.CacheConfig, rdb *redis.Client) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(cfg.MaxEntries, nil), nil
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("cache backend %q needs a redis client", cfg.Backend)
		}
		return NewRedisStore(rdb, cfg.KeyPrefix, nil), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
