// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T, ttl time.Duration) (*TTL[string, int], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string, int]("test", ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTL_GetSet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if got := c.HitRate(); got != 50 {
		t.Errorf("HitRate() = %v, want 50", got)
	}
}

func TestTTL_Expiry(t *testing.T) {
	c, clock := newTestCache(t, time.Minute)
	c.Set("a", 1)
	c.SetWithTTL("b", 2, time.Hour)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should miss")
	}
	if c.Len() != 1 {
		t.Errorf("expired entry should be dropped on read, Len() = %d", c.Len())
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v, want 2, true", v, ok)
	}
}

func TestTTL_Cleanup(t *testing.T) {
	c, clock := newTestCache(t, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("c", 3, time.Hour)

	clock.Advance(5 * time.Minute)

	if removed := c.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if stats := c.GetStats(); stats.Evictions != 2 || !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTTL_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key should miss")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestTTL_Concurrent(t *testing.T) {
	c := New[int, int]("concurrent", time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(i, g)
				c.Get(i)
				if i%50 == 0 {
					c.Cleanup()
				}
			}
		}(g)
	}
	wg.Wait()

	if c.Len() != 200 {
		t.Errorf("Len() = %d, want 200", c.Len())
	}
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Name() string { return "counting" }

func (s *countingSweeper) Cleanup() int {
	s.calls.Add(1)
	return 1
}

func TestJanitor_SweepsUntilCanceled(t *testing.T) {
	sweeper := &countingSweeper{}
	j := NewJanitor(sweeper, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for sweeper.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("janitor did not sweep")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}

	if j.String() != "cache-janitor-counting" {
		t.Errorf("String() = %q", j.String())
	}
}
