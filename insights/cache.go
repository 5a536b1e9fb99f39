package insights

import (
	"sync"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

type cacheKey struct {
	userID    string
	timeframe string
}

// Cache keeps the latest insight per (user, timeframe). Entries are replaced
// whole; validity depends on the timeframe's TTL.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]types.Insight
	ttl     map[string]time.Duration
	now     func() time.Time
}

// NewCache returns a cache using the configured TTLs. A nil now uses the wall
// clock.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[cacheKey]types.Insight),
		ttl:     config.InsightTTL,
		now:     now,
	}
}

// IsValid reports whether an insight created at createdAt is still fresh.
// Unknown timeframes are never valid.
func (c *Cache) IsValid(createdAt time.Time, timeframe string) bool {
	ttl, ok := c.ttl[timeframe]
	if !ok {
		return false
	}
	return c.now().Sub(createdAt) < ttl
}

// Get returns the cached insight if one exists and is still valid.
func (c *Cache) Get(userID, timeframe string) (types.Insight, bool) {
	c.mu.RLock()
	insight, ok := c.entries[cacheKey{userID, timeframe}]
	c.mu.RUnlock()

	if !ok || !c.IsValid(insight.CreatedAt, timeframe) {
		return types.Insight{}, false
	}
	return insight, true
}

func (c *Cache) Put(insight types.Insight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{insight.UserID, insight.Timeframe}] = insight
}
