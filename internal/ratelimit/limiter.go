package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store persists the rate-limit mapping. Keys are composite
// "<clientKey>_<unixSecond>" strings, values the entry's unix timestamp.
// Implementations only need whole-map load and save; the Limiter provides
// the atomicity of the check-and-record cycle.
type Store interface {
	Load(ctx context.Context) (map[string]int64, error)
	Save(ctx context.Context, entries map[string]int64) error
}

// Limiter enforces a sliding-window admission limit per client key. Expired
// entries are purged lazily on each check; there is no background timer.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	window time.Duration
	max    int
	now    func() time.Time
}

// NewLimiter creates a limiter with a one hour window and the given ceiling
func NewLimiter(store Store, max int) *Limiter {
	return &Limiter{
		store:  store,
		window: time.Hour,
		max:    max,
		now:    time.Now,
	}
}

// Allow reports whether a submission from the given client key is admitted
// and, when it is, records the attempt. The load-purge-count-insert-save
// sequence runs under the limiter mutex so concurrent requests cannot both
// observe an under-threshold count.
func (l *Limiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load rate limit state: %w", err)
	}

	now := l.now().Unix()
	cutoff := now - int64(l.window.Seconds())

	// Purge entries that aged out of the window, regardless of client
	for key, ts := range entries {
		if ts <= cutoff {
			delete(entries, key)
		}
	}

	// Count the remaining entries for this client
	count := 0
	prefix := clientKey + "_"
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}

	if count >= l.max {
		// Rejected attempts are not recorded, but the purge is still
		// persisted
		if err := l.store.Save(ctx, entries); err != nil {
			return false, fmt.Errorf("failed to save rate limit state: %w", err)
		}
		return false, nil
	}

	// Second resolution: two admits for the same client within the same
	// second collide on key and are stored once
	entries[fmt.Sprintf("%s_%d", clientKey, now)] = now

	if err := l.store.Save(ctx, entries); err != nil {
		return false, fmt.Errorf("failed to save rate limit state: %w", err)
	}
	return true, nil
}
