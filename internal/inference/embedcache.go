package inference

import (
	"container/list"
	"sync"
)

const defaultEmbedCacheSize = 32

// embedCache is a small LRU keyed by claim text. One claim is embedded
// once and compared against every source in a run, and batch runs repeat
// claims, so even a tiny cache removes most claim-embedding calls.
// It only ever holds vectors already returned by the API, so results are
// identical with or without it.
type embedCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type embedEntry struct {
	key    string
	vector []float32
}

func newEmbedCache(capacity int) *embedCache {
	if capacity <= 0 {
		capacity = defaultEmbedCacheSize
	}
	return &embedCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *embedCache) get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*embedEntry).vector, true
}

func (c *embedCache) put(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*embedEntry).vector = vector
		return
	}

	c.entries[key] = c.order.PushFront(&embedEntry{key: key, vector: vector})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*embedEntry).key)
	}
}

func (c *embedCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
