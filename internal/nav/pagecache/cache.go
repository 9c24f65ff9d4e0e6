package pagecache

import "sync"

// DefaultCapacity is used when New receives a non-positive capacity.
const DefaultCapacity = 20

// Cache stores page fragments keyed by normalized path and evicts in
// insertion order. Reads never change the eviction order.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	items    map[string]string
}

// New creates a Cache that holds at most capacity entries.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	return &Cache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		items:    make(map[string]string, capacity),
	}
}

// Get returns the content stored under key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content, ok := c.items[key]
	return content, ok
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Put stores content under key.
//
// A full cache first evicts its oldest entry, even when key is already
// present. A surviving key is overwritten in place and keeps its position;
// a key that was itself the oldest comes back at the tail.
func (c *Cache) Put(key, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.capacity {
		c.evictOldest()
	}

	if _, ok := c.items[key]; !ok {
		c.order = append(c.order, key)
	}
	c.items[key] = content
}

// Invalidate removes key from the cache.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = c.order[:0]
	clear(c.items)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Keys returns the cached keys, oldest first.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.order...)
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.items, oldest)
}
