package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a thread-safe, capacity-bounded LRU store whose entries expire after
// a period without access. Reads refresh both recency and the idle deadline.
type Cache struct {
	mu         sync.Mutex
	capacity   int
	defaultTTL time.Duration
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	now        func() time.Time
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	key       string
	value     interface{}
	ttl       time.Duration
	expiresAt time.Time // zero means no expiration
}

// NewCache creates a Cache. capacity <= 0 means unbounded; defaultTTL <= 0 means
// entries never expire unless Set is given a ttl.
func NewCache(capacity int, defaultTTL time.Duration) *Cache {
	return &Cache{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

// Set stores value under key. ttl 0 uses the cache default.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, ttl)
}

func (c *Cache) setLocked(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if el, ok := c.items[key]; ok {
		item := el.Value.(*cacheItem)
		item.value = value
		item.ttl = ttl
		item.expiresAt = c.deadline(ttl)
		c.order.MoveToFront(el)
		return
	}
	for c.capacity > 0 && len(c.items) >= c.capacity {
		c.evictOldest()
	}
	item := &cacheItem{key: key, value: value, ttl: ttl, expiresAt: c.deadline(ttl)}
	c.items[key] = c.order.PushFront(item)
}

// Get returns the value for key and refreshes its idle deadline.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key)
}

func (c *Cache) getLocked(key string) (interface{}, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	item := el.Value.(*cacheItem)
	if c.expired(item) {
		c.removeElement(el)
		return nil, false
	}
	item.expiresAt = c.deadline(item.ttl)
	c.order.MoveToFront(el)
	return item.value, true
}

// Update runs fn on the current value (ok=false when absent or expired) and
// stores its result, all under one lock.
func (c *Cache) Update(key string, fn func(old interface{}, ok bool) interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	old, ok := c.getLocked(key)
	c.setLocked(key, fn(old, ok), 0)
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Len returns the number of stored entries, expired ones included until swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes expired entries and returns how many were dropped.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*cacheItem)) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *Cache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func (c *Cache) expired(item *cacheItem) bool {
	return !item.expiresAt.IsZero() && c.now().After(item.expiresAt)
}

// Must be called with lock held.
func (c *Cache) evictOldest() {
	if el := c.order.Back(); el != nil {
		c.removeElement(el)
	}
}

// Must be called with lock held.
func (c *Cache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*cacheItem).key)
}
