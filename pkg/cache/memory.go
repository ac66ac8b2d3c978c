package cache

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// DefaultMemoryLimit bounds a MemoryCache created with a non-positive limit.
const DefaultMemoryLimit = 256 << 20

// maxMemoryEntries caps the entry count independently of the byte limit.
const maxMemoryEntries = 4096

// MemoryCache is an in-process LRU cache bounded by total value size.
// It is safe for concurrent use.
type MemoryCache struct {
	mu    sync.Mutex
	limit int
	size  int // bytes held; kept current by evicted
	lru   *simplelru.LRU[string, memoryEntry]
	now   func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most limit bytes of values.
func NewMemoryCache(limit int) *MemoryCache {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	c := &MemoryCache{limit: limit, now: time.Now}
	// NewLRU only fails for a non-positive size.
	c.lru, _ = simplelru.NewLRU[string, memoryEntry](maxMemoryEntries, c.evicted)
	return c
}

// evicted runs for every entry leaving the LRU, with c.mu held.
func (c *MemoryCache) evicted(_ string, e memoryEntry) {
	c.size -= len(e.data)
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return bytes.Clone(e.data), true, nil
}

// Set stores a value in the cache. Values larger than the limit are ignored.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(key)
	if len(data) > c.limit {
		return nil
	}

	e := memoryEntry{data: bytes.Clone(data)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, e)
	c.size += len(e.data)

	for c.size > c.limit {
		if _, _, ok := c.lru.RemoveOldest(); !ok {
			break
		}
	}
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.size = 0
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
