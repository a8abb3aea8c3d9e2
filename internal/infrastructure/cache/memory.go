package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/janhq/autoreply-api/internal/domain/retrieval"
)

// MemoryCache is an in-process LRU with per-entry expiry.
type MemoryCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

var _ retrieval.EmbeddingCache = (*MemoryCache)(nil)

type cacheEntry struct {
	value     []float32
	expiresAt time.Time
}

// NewMemoryCache creates an LRU holding at most maxSize embeddings.
func NewMemoryCache(maxSize int, ttl time.Duration) (*MemoryCache, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

// Get returns a live entry. Expired entries are evicted on read.
func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, bool) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry := raw.(cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []float32) {
	c.cache.Add(key, cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
}

// Len reports the number of cached entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.cache.Len()
}
