package report

import (
	"sync"
	"time"

	"costmanager/internal/core"
)

// Cache memoizes built reports for closed months. An entry becomes valid the
// first time a closed month's report is requested and stays valid forever
// unless a late write invalidates it; open months are never stored, so no
// TTL or eviction is needed.
type Cache struct {
	mu      sync.RWMutex
	entries map[core.MonthKey]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	report     core.MonthlyReport
	computedAt time.Time
}

func NewCache() *Cache {
	return NewCacheWithClock(time.Now)
}

// NewCacheWithClock builds a cache with an injectable clock. The clock
// decides which months count as closed at Put time.
func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[core.MonthKey]cacheEntry),
		now:     now,
	}
}

// Get returns the memoized report for key, if any.
func (c *Cache) Get(key core.MonthKey) (core.MonthlyReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return core.MonthlyReport{}, false
	}
	return entry.report, true
}

// Put stores the report only if key's month is closed under the cache's
// clock. Callers are not trusted to apply the policy themselves: storing an
// open month would silently serve stale data after the next write, so the
// call is a no-op instead.
func (c *Cache) Put(key core.MonthKey, rep core.MonthlyReport) {
	if !key.Closed(c.now()) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{report: rep, computedAt: c.now()}
}

// Invalidate removes key unconditionally. The cost write path calls this
// whenever an item lands inside a month that might already be memoized.
func (c *Cache) Invalidate(key core.MonthKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Size returns the number of memoized reports.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
