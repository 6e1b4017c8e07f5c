package fs

import (
	"sync"
	"time"
)

// cacheEntry is the last value read from a slot file together with the
// file attributes it was read at.
type cacheEntry struct {
	Data    []byte
	ModTime time.Time
	Size    int64
}

// cache keeps raw slot values so repeated reads of an
// unchanged file skip the disk.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry // key -> entry
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached entry for key if it is still fresh for the given
// file attributes.
func (c *cache) Get(key string, modTime time.Time, size int64) (*cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.ModTime.Equal(modTime) || entry.Size != size {
		return nil, false
	}
	return entry, true
}

// Set updates an entry in the cache.
func (c *cache) Set(key string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Prune removes entries that are not in the keep set.
func (c *cache) Prune(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if !keep[key] {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
