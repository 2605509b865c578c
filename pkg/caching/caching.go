// Package caching provides a simple file-based cache with a TTL, keyed by
// content hash. Batch callers use it to skip re-normalizing content they have
// already processed; the adapter layer itself never caches.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a TTL file cache rooted at a single directory.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance. The cache path will be created if it
// doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key computes the SHA256 hex digest of content, used both as the cache
// filename and as the document-store primary key.
func Key(content []byte) string {
	hash := sha256.Sum256(content)
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item from the cache. It returns the data and true if the
// item is found and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := filepath.Join(c.path, key)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	return data, true
}

// Set adds an item to the cache.
func (c *Cache) Set(key string, data []byte) error {
	filePath := filepath.Join(c.path, key)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
