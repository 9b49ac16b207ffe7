// Package cache provides the in-memory article store used within a run.
// Nothing here survives process exit: repeated runs must not be able to
// observe each other.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is the interface the fetcher caches article text behind.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Flush()
}

// Key derives a stable cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "verifact:v1:" + hex.EncodeToString(hash[:])
}
