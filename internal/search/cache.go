package search

import (
	"sync"
	"time"

	"immoxperts/server/internal/models"
)

type cacheEntry struct {
	insertedAt time.Time
	results    []models.SuggestionCandidate
}

// Cache memoizes complete ranked result lists by normalized query. An
// entry lives for the TTL; when the entry cap is exceeded the oldest
// insertion is evicted first.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	now     func() time.Time
	entries map[string]cacheEntry
	order   []string
}

// NewCache creates a cache with the given TTL and entry cap.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Cache{
		ttl:     ttl,
		max:     maxEntries,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached list for a normalized query, or false when
// absent or expired.
func (c *Cache) Get(queryNorm string) ([]models.SuggestionCandidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[queryNorm]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		c.evict(queryNorm)
		return nil, false
	}
	return entry.results, true
}

// Set stores a ranked list, evicting the oldest entry when full.
func (c *Cache) Set(queryNorm string, results []models.SuggestionCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[queryNorm]; exists {
		c.evict(queryNorm)
	}

	for len(c.entries) >= c.max && len(c.order) > 0 {
		c.evict(c.order[0])
	}

	c.entries[queryNorm] = cacheEntry{insertedAt: c.now(), results: results}
	c.order = append(c.order, queryNorm)
}

// Invalidate drops the entry for a query, used when the user commits a
// selection.
func (c *Cache) Invalidate(queryNorm string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evict(queryNorm)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evict removes a key from both the map and the insertion order. The
// caller must hold the lock.
func (c *Cache) evict(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
