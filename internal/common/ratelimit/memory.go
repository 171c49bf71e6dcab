package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count int
	reset time.Time
}

// MemoryLimiter counts requests per key in process memory. Windows reset lazily
// on the first request after they expire.
type MemoryLimiter struct {
	limit   int
	window  time.Duration
	maxKeys int
	clock   func() time.Time

	mu    sync.Mutex
	store map[string]windowEntry
}

// NewMemoryLimiter applies the package defaults to non-positive arguments.
func NewMemoryLimiter(limit int, window time.Duration, maxKeys int, clock func() time.Time) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	if clock == nil {
		clock = time.Now
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		maxKeys: maxKeys,
		clock:   clock,
		store:   make(map[string]windowEntry),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	key = normalizeKey(key)
	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.store[key]
	if !ok || !now.Before(entry.reset) {
		if len(l.store) > l.maxKeys {
			l.pruneExpiredLocked(now)
		}
		entry = windowEntry{count: 1, reset: now.Add(l.window)}
		l.store[key] = entry
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - 1, ResetAt: entry.reset}, nil
	}

	if entry.count >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: entry.reset}, nil
	}
	entry.count++
	l.store[key] = entry
	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - entry.count, ResetAt: entry.reset}, nil
}

// Len reports the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.store)
}

func (l *MemoryLimiter) pruneExpiredLocked(now time.Time) {
	for key, entry := range l.store {
		if !now.Before(entry.reset) {
			delete(l.store, key)
		}
	}
}
