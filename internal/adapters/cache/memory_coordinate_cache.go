package cache

import (
	"sync"

	"travel-fee-service/internal/domain"
)

// MemoryCoordinateCache is a process-wide, mutex-guarded map from normalized
// identifier to resolved location. Entries never expire: postal identifiers
// are reused across many requests and cardinality stays low, so the only
// reset is an explicit Clear.
type MemoryCoordinateCache struct {
	mu      sync.RWMutex
	entries map[string]domain.ResolvedLocation
}

func NewMemoryCoordinateCache() *MemoryCoordinateCache {
	return &MemoryCoordinateCache{
		entries: make(map[string]domain.ResolvedLocation),
	}
}

func (c *MemoryCoordinateCache) Get(key string) (domain.ResolvedLocation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	loc, ok := c.entries[key]
	return loc, ok
}

// Put stores loc under key, overwriting any existing entry.
func (c *MemoryCoordinateCache) Put(key string, loc domain.ResolvedLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = loc
}

// Clear removes every entry and reports how many were removed.
func (c *MemoryCoordinateCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]domain.ResolvedLocation)
	return removed
}

func (c *MemoryCoordinateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
