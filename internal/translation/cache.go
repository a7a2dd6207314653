package translation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// Cache is a process-lifetime, content-addressed store of computed
// translations. Entries never expire; operators clear it wholesale via
// Clear (exposed on /translate/clear-cache).
//
// Keys are a truncated digest of the content, so distinct inputs colliding on
// the digest would be served the same translation. At 16 hex characters (64
// bits) the collision probability over this app's corpus is negligible, and
// the compact key avoids retaining full source content in memory.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewCache creates an empty translation cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]any),
	}
}

// cacheKey derives the cache key for a (content, language) pair. Strings are
// hashed as-is; structured values are serialized with encoding/json, which
// sorts map keys and therefore yields a canonical form.
func cacheKey(content any, lang string) string {
	var serialized []byte
	switch v := content.(type) {
	case string:
		serialized = []byte(v)
	default:
		serialized, _ = json.Marshal(v)
	}
	sum := sha256.Sum256(serialized)
	return hex.EncodeToString(sum[:])[:16] + ":" + lang
}

// Get returns the cached translation for content into lang, if present.
func (c *Cache) Get(content any, lang string) (any, bool) {
	key := cacheKey(content, lang)
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

// Put stores a computed translation. Last writer wins on racing identical
// keys; values are deterministic per input so the race is benign.
func (c *Cache) Put(content any, lang string, translated any) {
	key := cacheKey(content, lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = translated
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry and returns the time of the wipe.
func (c *Cache) Clear() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
	return time.Now()
}
