package ratelimit

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, max int) (*Limiter, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "rate_limit.json"))
	return NewLimiter(store, max), store
}

func TestLimiterCeiling(t *testing.T) {
	l, _ := newTestLimiter(t, 5)
	ctx := context.Background()

	// One admit per second so the composite keys don't collide
	base := time.Unix(1700000000, 0)
	for i := 0; i < 5; i++ {
		tick := base.Add(time.Duration(i) * time.Second)
		l.now = func() time.Time { return tick }
		allowed, err := l.Allow(ctx, "203.0.113.7")
		if err != nil {
			t.Fatalf("Allow() error: %v", err)
		}
		if !allowed {
			t.Fatalf("admit %d: expected allowed", i+1)
		}
	}

	// The sixth within the window is rejected
	l.now = func() time.Time { return base.Add(6 * time.Second) }
	allowed, err := l.Allow(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("Allow() error: %v", err)
	}
	if allowed {
		t.Error("expected rejection at ceiling")
	}

	// Other clients are unaffected
	allowed, err = l.Allow(ctx, "198.51.100.1")
	if err != nil {
		t.Fatalf("Allow() error: %v", err)
	}
	if !allowed {
		t.Error("expected other client to be admitted")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l, store := newTestLimiter(t, 2)
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	l.now = func() time.Time { return base }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatal("first admit rejected")
	}

	l.now = func() time.Time { return base.Add(30 * time.Minute) }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatal("second admit rejected")
	}

	// At the ceiling inside the window
	l.now = func() time.Time { return base.Add(31 * time.Minute) }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); allowed {
		t.Fatal("expected rejection inside window")
	}

	// Once the oldest entry ages past one hour, capacity frees up by one
	l.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatal("expected admission after oldest entry expired")
	}

	// The expired entry was purged from the store
	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for key, ts := range entries {
		if ts <= base.Add(time.Second).Unix() {
			t.Errorf("stale entry %s (ts=%d) survived the purge", key, ts)
		}
	}
}

func TestLimiterPurgePersistedOnReject(t *testing.T) {
	l, store := newTestLimiter(t, 1)
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	l.now = func() time.Time { return base }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatal("first admit rejected")
	}

	// A different client fills its own slot, then ages out
	if allowed, _ := l.Allow(ctx, "198.51.100.1"); !allowed {
		t.Fatal("other client rejected")
	}

	// Two hours later the first client is admitted again; during that check
	// the other client's stale entry must be purged and the purge persisted
	l.now = func() time.Time { return base.Add(2 * time.Hour) }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
		t.Fatal("expected admission after window passed")
	}

	// Rejection path also persists the purge
	l.now = func() time.Time { return base.Add(2*time.Hour + time.Second) }
	if allowed, _ := l.Allow(ctx, "203.0.113.7"); allowed {
		t.Fatal("expected rejection at ceiling")
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("stored entries = %v, want exactly the fresh one", entries)
	}
}

func TestLimiterSameSecondCollision(t *testing.T) {
	l, store := newTestLimiter(t, 5)
	ctx := context.Background()

	fixed := time.Unix(1700000000, 0)
	l.now = func() time.Time { return fixed }

	// Two admits within the same second collide on the composite key and
	// are recorded once
	for i := 0; i < 2; i++ {
		if allowed, _ := l.Allow(ctx, "203.0.113.7"); !allowed {
			t.Fatalf("admit %d rejected", i+1)
		}
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("stored entries = %d, want 1", len(entries))
	}
}

func TestLimiterConcurrentAdmits(t *testing.T) {
	l, _ := newTestLimiter(t, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	// All goroutines race on the same client at the ceiling boundary; the
	// ceiling must never be jointly exceeded. Spread the timestamps so the
	// admits don't collapse onto one key.
	var seq int64
	var seqMu sync.Mutex
	l.now = func() time.Time {
		seqMu.Lock()
		defer seqMu.Unlock()
		seq++
		return time.Unix(1700000000+seq, 0)
	}

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := l.Allow(ctx, "203.0.113.7")
			if err != nil {
				t.Errorf("Allow() error: %v", err)
				return
			}
			if allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 5 {
		t.Errorf("admitted = %d, want 5", admitted)
	}
}

func TestFileStoreMissingAndCorrupted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rate_limit.json")
	store := NewFileStore(path)

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty mapping, got %v", entries)
	}

	if err := store.Save(ctx, map[string]int64{"203.0.113.7_1700000000": 1700000000}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	entries, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if entries["203.0.113.7_1700000000"] != 1700000000 {
		t.Errorf("round trip lost entry: %v", entries)
	}

	// A corrupted state file resets the window instead of failing
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	entries, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() on corrupted file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty mapping after corruption, got %v", entries)
	}
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "rate_limit.json"))

	if err := store.Save(ctx, map[string]int64{"203.0.113.7_1700000000": 1700000000}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save(ctx, map[string]int64{"203.0.113.7_1700000060": 1700000060}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(entries) != 1 || entries["203.0.113.7_1700000060"] != 1700000060 {
		t.Errorf("expected replaced mapping, got %v", entries)
	}

	// The rename must not leave temp files next to the state file
	names, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(names) != 1 || names[0].Name() != "rate_limit.json" {
		t.Errorf("expected only the state file in %s, got %v", dir, names)
	}
}
