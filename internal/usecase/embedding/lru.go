package embedding

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the number of vectors kept by the in-process cache.
const DefaultCacheSize = 500

type lruEntry[V any] struct {
	key   string
	value V
}

// LRU is a bounded least-recently-used cache safe for concurrent use.
// Get moves the entry to the front; Put evicts from the back once the
// capacity is reached.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

// NewLRU creates a cache holding at most capacity entries.
// Non-positive capacity falls back to DefaultCacheSize.
func NewLRU[V any](capacity int) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &LRU[V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[V]).value, true
}

// Put stores value under key. It reports whether another entry was evicted.
func (c *LRU[V]) Put(key string, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(el)
		return false
	}

	evicted := false
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry[V]).key)
			evicted = true
		}
	}
	c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
	return evicted
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
