package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// TTLCache is an injected, lifetime-scoped map of key to (value, expiry).
// All operations are atomic per key; Consume performs the read-and-remove a
// verification check needs without racing concurrent overwrites.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	done    chan struct{}
	once    sync.Once
}

func NewTTLCache(cleanupInterval time.Duration) *TTLCache {
	c := &TTLCache{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	}

	return c
}

// Set stores value under key, replacing any live entry.
func (c *TTLCache) Set(key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the live value for key. Expired entries are treated as absent
// and removed.
func (c *TTLCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}

	return e.value, true
}

func (c *TTLCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Consume removes the entry for key on the first validation attempt, match or
// not. It reports whether a live entry existed and whether its value matched.
func (c *TTLCache) Consume(key, value string) (matched, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return false, false
	}

	delete(c.entries, key)
	return e.value == value, true
}

func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stop terminates the janitor goroutine. The cache stays usable afterwards;
// expired entries are then only dropped lazily on access.
func (c *TTLCache) Stop() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *TTLCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
