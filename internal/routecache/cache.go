// Package routecache memoizes computed routes so that repeated identical
// requests — common when a client polls or retries — skip the planner
// entirely. The HTTP handler caches only deterministic (greedy) routes;
// simulated-annealing requests bypass the cache.
package routecache

import (
	"sync"
	"time"

	"wayfarer/internal/planner"
)

// Cache is an in-memory TTL cache of planner.Routes, keyed by a
// caller-constructed request key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]routeEntry
	ttl     time.Duration
}

type routeEntry struct {
	route     planner.Route
	expiresAt time.Time
}

// New creates a cache with the given TTL and starts its background cleanup
// loop.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]routeEntry),
		ttl:     ttl,
	}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			c.cleanup()
		}
	}()
	return c
}

// Get retrieves a cached route if it exists and hasn't expired.
func (c *Cache) Get(key string) (planner.Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.route, true
}

// Set stores a route in the cache under key.
func (c *Cache) Set(key string, route planner.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = routeEntry{
		route:     route,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, v := range c.entries {
		if now.After(v.expiresAt) {
			delete(c.entries, k)
		}
	}
}
