// Package ratelimit implements the fixed-window per-client limiter that guards
// the public quick-estimate endpoint.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creator-pricing-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultLimit   = 10
	DefaultWindow  = 60 * time.Second
	DefaultMaxKeys = 10000

	anonymousKey = "anonymous"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the wait until the current window closes, rounded up to a second.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait <= 0 {
		return 0
	}
	return (wait + time.Second - 1).Truncate(time.Second)
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return anonymousKey
	}
	return key
}

// New builds the limiter selected by cfg.Backend.
func New(cfg config.RateLimitConfig, rdb *redis.Client) (Limiter, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryLimiter(cfg.Limit, cfg.WindowDuration(), cfg.MaxKeys, nil), nil
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("rate limit backend %q needs a redis client", cfg.Backend)
		}
		return NewRedisLimiter(rdb, cfg.KeyPrefix, cfg.Limit, cfg.WindowDuration()), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}
