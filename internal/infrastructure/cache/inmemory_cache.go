package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/cliente"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryCache implements the client cache contract with process-local
// storage. Useful for development and tests where Redis is unavailable;
// invalidation does not propagate across instances.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	stopCh  chan struct{}
	once    sync.Once
}

// inMemoryEntry wraps a cached value with expiration time
type inMemoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e inMemoryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryCache creates a new in-memory cache with background cleanup
func NewInMemoryCache() *InMemoryCache {
	c := &InMemoryCache{
		entries: make(map[string]inMemoryEntry),
		stopCh:  make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// GetJSON fetches key and unmarshals it into dest
func (c *InMemoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.isExpired() {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// SetJSON marshals value and stores it under key with the given TTL
func (c *InMemoryCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = inMemoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete removes a single key
func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// DeleteByPattern removes every key matching the glob pattern
func (c *InMemoryCache) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deleted int64
	for key := range c.entries {
		if matchKey(pattern, key) {
			delete(c.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// matchKey implements Redis MATCH glob semantics: '*' matches any run of
// characters with no separator exception and '?' matches exactly one.
// List cache keys embed serialized filters, so '*' must also cross '/'.
func matchKey(pattern, key string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(key); i++ {
				if matchKey(pattern[1:], key[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(key) == 0 {
				return false
			}
		default:
			if len(key) == 0 || key[0] != pattern[0] {
				return false
			}
		}
		pattern = pattern[1:]
		key = key[1:]
	}
	return len(key) == 0
}

// Close stops the cleanup goroutine
func (c *InMemoryCache) Close() error {
	c.once.Do(func() { close(c.stopCh) })
	return nil
}

// Len returns the number of live entries (for testing/monitoring)
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, entry := range c.entries {
		if !entry.isExpired() {
			n++
		}
	}
	return n
}

// cleanupExpired periodically evicts expired entries
func (c *InMemoryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.isExpired() {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// Ensure InMemoryCache implements cliente.Cache
var _ cliente.Cache = (*InMemoryCache)(nil)
