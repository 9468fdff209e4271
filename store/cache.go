// ABOUTME: Generic read-through cache keyed by topic
// ABOUTME: Get-or-load with coalesced loads, explicit put and invalidate
package store

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[V any] struct {
	value V
	valid bool
	gen   uint64
}

// Cache holds one decoded value per key. A value stays valid until Put
// replaces it or Invalidate marks it stale.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[V]
	loads   singleflight.Group
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]*cacheEntry[V])}
}

func (c *Cache[K, V]) entry(k K) *cacheEntry[V] {
	e, ok := c.entries[k]
	if !ok {
		e = &cacheEntry[V]{}
		c.entries[k] = e
	}
	return e
}

// Get returns the cached value if it is present and valid.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || !e.valid {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrLoad returns the cached value or runs load and caches its result.
// Concurrent misses for the same key share one load. A failed load is
// returned to every waiter and nothing is cached. A load that races with a
// Put or Invalidate does not overwrite the newer state.
func (c *Cache[K, V]) GetOrLoad(ctx context.Context, k K, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}

	c.mu.Lock()
	gen := c.entry(k).gen
	c.mu.Unlock()

	res, err, _ := c.loads.Do(fmt.Sprint(k), func() (interface{}, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		e := c.entry(k)
		if e.gen == gen {
			e.value = v
			e.valid = true
		}
		c.mu.Unlock()
		return v, nil
	})

	v, _ := res.(V)
	return v, err
}

// Put stores v as the current value for k.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(k)
	e.value = v
	e.valid = true
	e.gen++
}

// Invalidate marks k stale so the next read loads again.
func (c *Cache[K, V]) Invalidate(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(k)
	var zero V
	e.value = zero
	e.valid = false
	e.gen++
}

// Clear invalidates every key.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		var zero V
		e.value = zero
		e.valid = false
		e.gen++
	}
}
