package viewcache

import "sync"

// Cache holds rendered view bodies keyed by request path. Mutations call
// Invalidate so the next read of that path is recomputed.
type Cache struct {
	mu    sync.RWMutex
	views map[string][]byte
}

func New() *Cache {
	return &Cache{views: make(map[string][]byte)}
}

func (c *Cache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.views[path]
	return body, ok
}

func (c *Cache) Put(path string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[path] = body
}

// Invalidate drops the cached view for path. Idempotent: invalidating a path
// that was never cached is a no-op.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, path)
}
