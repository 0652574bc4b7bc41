// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package cache provides a bounded in-memory TTL cache used to absorb
// repeated TMDB lookups (movie detail, the popular swipe deck).
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/tomtom215/moviematch/internal/metrics"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Stats tracks cache performance.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

// Cache is a thread-safe LRU cache with per-entry expiration.
type Cache[V any] struct {
	name     string
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // front is most recently used
	stats Stats
}

// New creates a cache. name labels the Prometheus cache metrics.
// Non-positive capacity or ttl fall back to 1000 entries and 5 minutes.
func New[V any](name string, capacity int, ttl time.Duration) *Cache[V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache[V]{
		name:     name,
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.recordLocked(false)
		return zero, false
	}

	e := el.Value.(*entry[V])
	if c.now().After(e.expiresAt) {
		c.removeLocked(el)
		c.recordLocked(false)
		return zero, false
	}

	c.order.MoveToFront(el)
	c.recordLocked(true)
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}
	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(c.order.Len()))
}

// GetOrLoad returns the cached value or calls load and caches its result.
// Errors are not cached.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a copy of the counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = c.order.Len()
	return s
}

// Cleanup drops every expired entry and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry[V]).expiresAt) {
			c.removeLocked(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Serve runs periodic cleanup until ctx is done. It satisfies
// suture.Service so the janitor can be supervised.
func (c *Cache[V]) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// String names the janitor in supervisor logs.
func (c *Cache[V]) String() string {
	return "cache-janitor-" + c.name
}

func (c *Cache[V]) removeLocked(el *list.Element) {
	e := c.order.Remove(el).(*entry[V])
	delete(c.items, e.key)
	c.stats.Evictions++
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(c.order.Len()))
}

func (c *Cache[V]) recordLocked(hit bool) {
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	metrics.RecordCacheLookup(c.name, hit)
}
