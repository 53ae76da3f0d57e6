// Package infra provides shared infrastructure components used across
// the application: caching, rate limiting, and HTTP utilities.
package infra

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// --- TTL cache ---

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// CacheEntry holds a cached value together with its insertion time.
type CacheEntry[V any] struct {
	Value      V
	InsertedAt time.Time
}

// Cache is a thread-safe in-memory cache with a fixed TTL. Expiry is
// checked on every lookup; concurrent fills of the same key are
// last-write-wins.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry[V]
	ttl     time.Duration
	now     Clock
}

// NewCacheWithClock creates a cache with the given TTL that reads time
// from now.
func NewCacheWithClock[V any](ttl time.Duration, now Clock) *Cache[V] {
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		entries: make(map[string]CacheEntry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// TTL returns the cache's time-to-live.
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Get retrieves a value from the cache. Returns the zero value and false
// if the key is missing or its entry is older than the TTL.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.expired(entry) {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Set stores a value in the cache, stamped with the current time.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = CacheEntry[V]{
		Value:      value,
		InsertedAt: c.now(),
	}
	c.mu.Unlock()
}

// Invalidate removes a key from the cache and reports whether it was present.
func (c *Cache[V]) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Flush removes all entries and returns the dropped keys, sorted.
func (c *Cache[V]) Flush() []string {
	c.mu.Lock()
	dropped := make([]string, 0, len(c.entries))
	for k := range c.entries {
		dropped = append(dropped, k)
	}
	c.entries = make(map[string]CacheEntry[V])
	c.mu.Unlock()

	sort.Strings(dropped)
	return dropped
}

// Len returns the number of stored entries, including expired ones that
// have not been replaced yet.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) expired(e CacheEntry[V]) bool {
	return c.now().Sub(e.InsertedAt) >= c.ttl
}

// --- Rate limiter ---

// RateLimiter is a token bucket allowing maxTokens requests per refillRate.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter that allows maxTokens requests
// per refillRate duration.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	if maxTokens <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := refillRate / time.Duration(maxTokens)
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(every), maxTokens)}
}

// Wait blocks until a token is available or context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}
