package cache

// Tracked returns the number of keys the cache holds bookkeeping for.
func (c *Cache[V]) Tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}
