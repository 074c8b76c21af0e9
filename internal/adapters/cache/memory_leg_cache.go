package cache

import (
	"context"
	"delivery-planner/internal/domain"
	"sync"
	"time"
)

// MemoryLegCache keeps computed legs in process memory.
// A zero TTL keeps entries until the process exits.
type MemoryLegCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	route   domain.Route
	expires time.Time
}

func NewMemoryLegCache(ttl time.Duration) *MemoryLegCache {
	return &MemoryLegCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryLegCache) Get(_ context.Context, from, to domain.Coordinate) (domain.Route, bool, error) {
	key := legKey("", from, to)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return domain.Route{}, false, nil
	}

	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return domain.Route{}, false, nil
	}

	return e.route, true, nil
}

func (c *MemoryLegCache) Put(_ context.Context, from, to domain.Coordinate, route domain.Route) error {
	e := memoryEntry{route: route}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[legKey("", from, to)] = e
	c.mu.Unlock()
	return nil
}

// Len is the number of entries held, expired or not.
func (c *MemoryLegCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
