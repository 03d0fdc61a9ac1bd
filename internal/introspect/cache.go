package introspect

import (
	"sync"
	"time"
)

// cacheEntry holds a cached result with expiration.
type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

// Cache keeps introspection results per endpoint URL for a fixed TTL.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewCache creates a cache with the given TTL. Close stops its cleanup
// goroutine.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get returns the cached result for url if it has not expired.
func (c *Cache) Get(url string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

// Set stores the result for url.
func (c *Cache) Set(url string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = cacheEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete drops the result for url.
func (c *Cache) Delete(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, url)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
