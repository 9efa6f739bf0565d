package shape

import "sync"

// DefaultCacheLimit is the number of parsed paths a Cache keeps by default.
const DefaultCacheLimit = 100

// Cache memoizes Parse. When it grows past its limit the oldest half of
// the entries is dropped. A nil *Cache parses without caching.
type Cache struct {
	mu      sync.Mutex
	limit   int
	entries map[string]Shape
	order   []string
}

// NewCache creates a Cache holding at most limit entries. A non-positive
// limit selects DefaultCacheLimit.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	c := new(Cache)
	c.limit = limit
	c.entries = make(map[string]Shape)
	return c
}

// Parse returns the cached Shape for d, parsing it on a miss.
func (c *Cache) Parse(d string) Shape {
	if c == nil {
		return Parse(d)
	}

	c.mu.Lock()
	s, ok := c.entries[d]
	c.mu.Unlock()
	if ok {
		return s
	}

	s = Parse(d)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[d]; !ok {
		c.entries[d] = s
		c.order = append(c.order, d)
		if len(c.order) > c.limit {
			c.evict(len(c.order) / 2)
		}
	}
	return s
}

func (c *Cache) evict(n int) {
	for _, d := range c.order[:n] {
		delete(c.entries, d)
	}
	c.order = append([]string(nil), c.order[n:]...)
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
