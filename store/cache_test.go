// ABOUTME: Tests for the generic read-through cache
// ABOUTME: Covers load-once, invalidation, failed loads and loads racing with Put
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOnceUntilInvalidated(t *testing.T) {
	c := NewCache[string, int]()
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls * 10, nil
	}

	v, err := c.GetOrLoad(context.Background(), "k", load)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, calls)

	c.Invalidate("k")
	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 20, v)
	assert.Equal(t, 2, calls)
}

func TestCacheFailedLoadIsNotCached(t *testing.T) {
	c := NewCache[string, int]()
	boom := errors.New("boom")

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCachePutWinsOverRacingLoad(t *testing.T) {
	c := NewCache[string, int]()
	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		c.Put("k", 99)
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	cached, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 99, cached)
}

func TestCacheCoalescesConcurrentLoads(t *testing.T) {
	c := NewCache[string, int]()
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
				calls.Add(1)
				<-release
				return 7, nil
			})
		}(i)
	}
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 7, r)
	}
	assert.LessOrEqual(t, int(calls.Load()), len(results))
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestCacheClear(t *testing.T) {
	c := NewCache[string, int]()
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}
