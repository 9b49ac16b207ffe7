package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a TTL-bounded in-memory store.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory store with the given default TTL.
// Expired entries are swept at twice the TTL.
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{
		cache: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

// Get retrieves a value if present and unexpired.
func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value under key for the given TTL.
// A zero TTL uses the store default.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

// Delete removes a value.
func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}

// Flush removes all values.
func (m *Memory) Flush() {
	m.cache.Flush()
}
