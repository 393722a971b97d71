package memory

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	size      int
	expiresAt time.Time
}

// LRUTTL is a threadsafe LRU cache with per-entry TTL and an optional byte
// budget. Expired entries are dropped on access.
type LRUTTL[K comparable, V any] struct {
	mu         sync.Mutex
	order      *list.List
	items      map[K]*list.Element
	maxEntries int
	maxBytes   int
	usedBytes  int
	ttl        time.Duration
}

func NewLRUTTL[K comparable, V any](maxEntries, maxBytes int, ttl time.Duration) *LRUTTL[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LRUTTL[K, V]{
		order:      list.New(),
		items:      make(map[K]*list.Element),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		ttl:        ttl,
	}
}

func (c *LRUTTL[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, ok := c.items[key]
	if !ok {
		return zero, false
	}
	ent := ele.Value.(*entry[K, V])
	if time.Now().After(ent.expiresAt) {
		c.remove(ele)
		return zero, false
	}
	c.order.MoveToFront(ele)
	return ent.value, true
}

func (c *LRUTTL[K, V]) Set(key K, value V, sizeBytes int) {
	if c == nil {
		return
	}
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		ent := ele.Value.(*entry[K, V])
		c.usedBytes += sizeBytes - ent.size
		ent.value = value
		ent.size = sizeBytes
		ent.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(ele)
		c.evict()
		return
	}

	ele := c.order.PushFront(&entry[K, V]{
		key:       key,
		value:     value,
		size:      sizeBytes,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.items[key] = ele
	c.usedBytes += sizeBytes
	c.evict()
}

func (c *LRUTTL[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.items[key]; ok {
		c.remove(ele)
	}
}

func (c *LRUTTL[K, V]) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = list.New()
	c.items = make(map[K]*list.Element)
	c.usedBytes = 0
}

func (c *LRUTTL[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// evict drops entries until both budgets hold. Entries whose TTL has already
// lapsed go first, even when a live entry is less recently used; only once
// none remain does plain LRU order apply.
func (c *LRUTTL[K, V]) evict() {
	now := time.Now()
	for c.overBudget() {
		victim := c.expiredFrom(c.order.Back(), now)
		if victim == nil {
			victim = c.order.Back()
		}
		if victim == nil {
			return
		}
		c.remove(victim)
	}
}

func (c *LRUTTL[K, V]) overBudget() bool {
	if c.order.Len() == 0 {
		return false
	}
	return c.order.Len() > c.maxEntries || (c.maxBytes > 0 && c.usedBytes > c.maxBytes)
}

func (c *LRUTTL[K, V]) expiredFrom(ele *list.Element, now time.Time) *list.Element {
	for ; ele != nil; ele = ele.Prev() {
		if now.After(ele.Value.(*entry[K, V]).expiresAt) {
			return ele
		}
	}
	return nil
}

func (c *LRUTTL[K, V]) remove(ele *list.Element) {
	if ele == nil {
		return
	}
	c.order.Remove(ele)
	ent := ele.Value.(*entry[K, V])
	delete(c.items, ent.key)
	c.usedBytes -= ent.size
	if c.usedBytes < 0 {
		c.usedBytes = 0
	}
}
