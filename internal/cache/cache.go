// Callboard - Call Center Reporting Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/callboard

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/callboard/internal/metrics"
)

// Entry is a cached item with expiration
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL support.
type Cache[V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// Stats tracks cache performance
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries live for ttl. The name labels the
// cache's metrics.
//
// No background goroutine is started; run a Janitor to sweep expired
// entries that are never read again.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		name:    name,
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     time.Now,
		stats:   Stats{LastCleanup: time.Now()},
	}
}

// Name returns the cache name.
func (c *Cache[V]) Name() string {
	return c.name
}

// Get retrieves a value. Expired entries are removed and count as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return zero, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it
		if cur, ok := c.entries[key]; ok && c.now().After(cur.ExpiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		}
		c.syncSizeLocked()
		c.mu.Unlock()
		c.recordMiss()
		return zero, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{Data: value, ExpiresAt: c.now().Add(ttl)}
	c.syncSizeLocked()
}

// GetOrCreate returns the cached value for key, calling create and storing
// its result on a miss. create runs under the cache lock so concurrent
// callers for the same key observe a single value.
func (c *Cache[V]) GetOrCreate(key string, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && !c.now().After(entry.ExpiresAt) {
		return entry.Data
	}
	v := create()
	c.entries[key] = Entry[V]{Data: v, ExpiresAt: c.now().Add(c.ttl)}
	c.syncSizeLocked()
	return v
}

// Delete removes a key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.stats.Evictions++
	metrics.CacheEvictions.WithLabelValues(c.name).Inc()
	c.syncSizeLocked()
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the hit percentage (0-100).
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	c.stats.Evictions += int64(evicted)
	c.stats.LastCleanup = now
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(evicted))
	c.syncSizeLocked()
	return evicted
}

// syncSizeLocked updates key counts (must be called with mu held).
func (c *Cache[V]) syncSizeLocked() {
	c.stats.TotalKeys = int64(len(c.entries))
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}

func (c *Cache[V]) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache[V]) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}
