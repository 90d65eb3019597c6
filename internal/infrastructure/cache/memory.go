package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMaxEntries = 10_000

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryScoreCache is an in-process port.ScoreCache used when Redis is not
// configured. It is a size-bounded LRU whose entries expire after the TTL
// given at construction; a Set with a shorter ttl expires that entry sooner.
type MemoryScoreCache struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

// NewMemoryScoreCache creates a cache holding at most maxEntries values for
// at most ttl each. A non-positive maxEntries uses the default of 10000 and
// a non-positive ttl keeps entries until they are evicted.
func NewMemoryScoreCache(maxEntries int, ttl time.Duration) *MemoryScoreCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &MemoryScoreCache{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, ttl),
		now: time.Now,
	}
}

// Get returns a copy of the cached value if present and not expired.
func (c *MemoryScoreCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value, evicting the least recently used entry when
// the cache is full.
func (c *MemoryScoreCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryScoreCache) Len() int {
	return c.lru.Len()
}
