package report

import (
	"sync"
	"testing"
	"time"

	"costmanager/internal/core"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCachePutAndGetClosedMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(fixedClock(now))

	key := core.MonthKey{UserID: 1, Year: 2024, Month: 5}
	rep := Build(key, nil)

	if _, ok := cache.Get(key); ok {
		t.Fatal("Get on empty cache should miss")
	}

	cache.Put(key, rep)

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get after Put should hit for a closed month")
	}
	if got.Key() != key {
		t.Errorf("cached report key = %v, want %v", got.Key(), key)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
}

func TestCacheRefusesOpenMonths(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		key  core.MonthKey
	}{
		{name: "current month", key: core.MonthKey{UserID: 1, Year: 2024, Month: 6}},
		{name: "future month", key: core.MonthKey{UserID: 1, Year: 2024, Month: 11}},
		{name: "future year", key: core.MonthKey{UserID: 1, Year: 2025, Month: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewCacheWithClock(fixedClock(now))
			cache.Put(tt.key, Build(tt.key, nil))

			if _, ok := cache.Get(tt.key); ok {
				t.Error("open month must not be memoized")
			}
			if cache.Size() != 0 {
				t.Errorf("Size() = %d, want 0", cache.Size())
			}
		})
	}
}

func TestCacheInvalidate(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(fixedClock(now))

	key := core.MonthKey{UserID: 1, Year: 2024, Month: 4}
	cache.Put(key, Build(key, nil))
	if _, ok := cache.Get(key); !ok {
		t.Fatal("expected hit before invalidation")
	}

	cache.Invalidate(key)

	if _, ok := cache.Get(key); ok {
		t.Error("expected miss after invalidation")
	}

	// Invalidating an absent key is a no-op.
	cache.Invalidate(core.MonthKey{UserID: 99, Year: 2000, Month: 1})
}

func TestCacheKeysAreIndependent(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(fixedClock(now))

	a := core.MonthKey{UserID: 1, Year: 2024, Month: 3}
	b := core.MonthKey{UserID: 2, Year: 2024, Month: 3}
	cache.Put(a, Build(a, nil))
	cache.Put(b, Build(b, nil))

	cache.Invalidate(a)

	if _, ok := cache.Get(a); ok {
		t.Error("invalidated key should miss")
	}
	if _, ok := cache.Get(b); !ok {
		t.Error("sibling key should still hit")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(fixedClock(now))

	key := core.MonthKey{UserID: 1, Year: 2024, Month: 2}
	rep := Build(key, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch n % 3 {
				case 0:
					cache.Put(key, rep)
				case 1:
					cache.Get(key)
				default:
					cache.Invalidate(key)
				}
			}
		}(i)
	}
	wg.Wait()
}
