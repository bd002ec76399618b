// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/copurchase/internal/metrics"
)

// CleanupInterval is how often the janitor sweeps expired entries.
const CleanupInterval = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// Cache provides a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	name string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry[V]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// Stats is a snapshot of cache performance counters
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int
}

// New creates a cache whose entries live for ttl and starts the background
// janitor. name labels the cache metrics. Call Close to stop the janitor.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return newWithClock[V](name, ttl, time.Now)
}

func newWithClock[V any](name string, ttl time.Duration, now func() time.Time) *Cache[V] {
	c := &Cache[V]{
		name:    name,
		ttl:     ttl,
		now:     now,
		entries: make(map[string]Entry[V]),
		stop:    make(chan struct{}),
	}

	go c.cleanupLoop()

	return c
}

// Get retrieves a value by key. An expired entry is removed and reported as
// a miss.
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
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
		c.recordMiss()
		return zero, false
	}

	c.hits.Add(1)
	metrics.RecordCacheLookup(c.name, true)
	return entry.Value, true
}

// Set stores a value with the default TTL, overwriting any existing entry.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{
		Value:     value,
		ExpiresAt: c.now().Add(ttl),
	}
}

// Delete removes a single entry. Missing keys are a no-op.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
}

// Clear removes all entries and returns how many were dropped.
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]Entry[V])
	c.mu.Unlock()

	c.evictions.Add(int64(n))
	return n
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache counters
func (c *Cache[V]) GetStats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		TotalKeys: c.Len(),
	}
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the background janitor. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanupLoop periodically removes expired entries
func (c *Cache[V]) cleanupLoop() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries and returns how many were removed
func (c *Cache[V]) cleanup() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.evictions.Add(int64(removed))
	return removed
}

func (c *Cache[V]) recordMiss() {
	c.misses.Add(1)
	metrics.RecordCacheLookup(c.name, false)
}

// GenerateKey creates a cache key from the method name and parameters
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", method, params)
	}

	// Hash the JSON data for a compact key
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
