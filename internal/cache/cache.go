// Package cache provides a small TTL cache for advisory read responses,
// so repeated history/news reads do not round-trip to the backend.
// Market quotes are never cached.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// entry wraps a cached JSON body with expiry and insertion order tracking.
type entry struct {
	body      []byte
	expiry    time.Time
	insertIdx int64
}

// ResponseCache caches serialized JSON responses for advisory GET reads.
// Keys are "userID:resource". Thread-safe with sync.RWMutex.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a ResponseCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &ResponseCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// MakeKey builds a cache key from a user ID and resource path.
func MakeKey(userID int, resource string) string {
	return fmt.Sprintf("%d:%s", userID, resource)
}

// Get returns a cached body if found and not expired.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.body, true
}

// Set stores a body in the cache. Evicts the oldest entry if at capacity.
func (c *ResponseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		body:      body,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// InvalidateResource removes all entries for the given resource path,
// regardless of user. Called after a write to that resource.
func (c *ResponseCache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	suffix := ":" + resource
	for key := range c.items {
		if strings.HasSuffix(key, suffix) || strings.Contains(key, suffix+"?") {
			delete(c.items, key)
		}
	}
}

// evictOldest removes the entry with the lowest insertIdx. Must be called
// with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
