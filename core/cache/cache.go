package cache

import (
	"sync"
	"time"
)

// Cache is a simple thread-safe key-value store with TTL and tag
// invalidation. The API layer uses it to cache audit reports; the document
// ingester uses it to skip re-parsing files seen in recent runs.
type Cache struct {
	m        sync.Map
	tagIndex sync.Map // tag string -> map[any]struct{}
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{}
}

type cacheItem struct {
	Value     any
	ExpiresAt int64 // unix nanoseconds; 0 = no expiration
}

// Set stores a value with an optional TTL in seconds (0 = no expiry) and
// optional tags for group invalidation.
func (c *Cache) Set(key, value any, ttl int64, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	for _, tag := range tags {
		set, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		set.(*sync.Map).Store(key, struct{}{})
	}
}

// Get retrieves a value. Returns (nil, false) when missing or expired.
func (c *Cache) Get(key any) (any, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key any) {
	c.m.Delete(key)
}

// InvalidateTag removes every key associated with a tag.
func (c *Cache) InvalidateTag(tag string) {
	v, ok := c.tagIndex.Load(tag)
	if !ok {
		return
	}
	v.(*sync.Map).Range(func(key, _ any) bool {
		c.m.Delete(key)
		return true
	})
	c.tagIndex.Delete(tag)
}
