package collector

import (
	"sync"
	"time"

	"StockForecaster/internal/metrics"
)

// DefaultCacheTTL is how long a collected snapshot stays fresh.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a TTL cache keyed by symbol. It is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

// NewCache creates a cache; a non-positive ttl selects DefaultCacheTTL.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value if it is younger than the TTL.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		if ok {
			delete(c.entries, key)
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		var zero V
		return zero, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[V]{value: value, storedAt: c.now()}
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len counts entries, including expired ones not yet evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
