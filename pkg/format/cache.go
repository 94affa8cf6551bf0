package format

import (
	"container/list"
	"sync"

	"golang.org/x/sync/singleflight"
)

// lruEntry holds a cached formatter with its key.
type lruEntry[V any] struct {
	value V
	key   string
}

// lru is a bounded formatter cache. It uses a hash map for O(1) lookups and
// a doubly-linked list for LRU ordering; the most recently used formatters
// are at the front. Concurrent misses for the same key build the formatter
// once.
type lru[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	group    singleflight.Group
	max      int
	mu       sync.Mutex
}

func newLRU[V any](maxEntries int) *lru[V] {
	return &lru[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		max:      maxEntries,
	}
}

func (c *lru[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*lruEntry[V]).value, true
}

func (c *lru[V]) set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruEntry[V]).value = value
		c.eviction.MoveToFront(elem)
		return
	}

	if c.max > 0 && len(c.items) >= c.max {
		if oldest := c.eviction.Back(); oldest != nil {
			c.eviction.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry[V]).key)
		}
	}

	c.items[key] = c.eviction.PushFront(&lruEntry[V]{key: key, value: value})
}

// getOrCreate returns the cached value for key, or builds and caches it.
// Build errors are not cached.
func (c *lru[V]) getOrCreate(key string, build func() (V, error)) (V, error) {
	if v, ok := c.get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.get(key); ok {
			return v, nil
		}
		v, err := build()
		if err != nil {
			return nil, err
		}
		c.set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *lru[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *lru[V]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}
