package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"immoxperts/server/internal/models"
)

func TestCacheTTLBoundary(t *testing.T) {
	cache := NewCache(30*time.Minute, 10)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	results := []models.SuggestionCandidate{{DisplayName: "Paris"}}
	cache.Set("paris", results)

	// Served from cache just before the TTL.
	now = base.Add(29 * time.Minute)
	got, ok := cache.Get("paris")
	assert.True(t, ok)
	assert.Equal(t, results, got)

	// Expired just after the TTL.
	now = base.Add(31 * time.Minute)
	_, ok = cache.Get("paris")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCacheEvictsOldestInsertion(t *testing.T) {
	cache := NewCache(time.Hour, 3)

	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("query-%d", i), nil)
	}
	cache.Set("query-3", nil)

	_, ok := cache.Get("query-0")
	assert.False(t, ok, "oldest entry should be evicted")
	for i := 1; i <= 3; i++ {
		_, ok := cache.Get(fmt.Sprintf("query-%d", i))
		assert.True(t, ok, "entry %d should survive", i)
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache(time.Hour, 10)
	cache.Set("lyon", []models.SuggestionCandidate{{DisplayName: "Lyon"}})

	cache.Invalidate("lyon")
	_, ok := cache.Get("lyon")
	assert.False(t, ok)
}
