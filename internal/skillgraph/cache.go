package skillgraph

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// ExpansionCache memoizes expansion results. Injected into the expander so
// tests can substitute a no-op or deterministic implementation.
type ExpansionCache interface {
	Get(key string) (ExpansionResult, bool)
	Set(key string, value ExpansionResult)
	Clear()
}

// LRUCache is a bounded expansion cache with least-recently-used eviction
// and an absolute TTL per entry. Reads under the mutex are cheap at this
// scale; skill expansion is not a hot-path bottleneck.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
	now      func() time.Time
}

type lruEntry struct {
	key       string
	value     ExpansionResult
	expiresAt time.Time
}

// NewLRUCache creates a cache holding at most capacity entries, each valid
// for ttl from the time it was stored.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

func (c *LRUCache) Get(key string) (ExpansionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return ExpansionResult{}, false
	}
	entry := elem.Value.(*lruEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return ExpansionResult{}, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

func (c *LRUCache) Set(key string, value ExpansionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	for c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}

	elem := c.order.PushFront(&lruEntry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.entries[key] = elem
}

// Clear drops every entry; used for test isolation.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
}

// Len returns the current entry count.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// NoopCache disables memoization.
type NoopCache struct{}

func (NoopCache) Get(string) (ExpansionResult, bool) { return ExpansionResult{}, false }
func (NoopCache) Set(string, ExpansionResult)        {}
func (NoopCache) Clear()                             {}

// Expander wraps a graph with memoized expansion at fixed result caps.
type Expander struct {
	graph      *Graph
	cache      ExpansionCache
	maxDepth   int
	maxResults int
}

// NewExpander builds an expander. maxDepth and maxResults are the defaults
// applied when Expand is called with depth <= 0.
func NewExpander(graph *Graph, cache ExpansionCache, maxDepth, maxResults int) *Expander {
	if cache == nil {
		cache = NoopCache{}
	}
	if maxDepth < 1 {
		maxDepth = 2
	}
	if maxResults < 1 {
		maxResults = 10
	}
	return &Expander{graph: graph, cache: cache, maxDepth: maxDepth, maxResults: maxResults}
}

// Expand returns the memoized expansion for (skillName, maxDepth). The key
// uses the normalized name so "Node.JS" and "nodejs" share an entry.
func (e *Expander) Expand(skillName string, maxDepth int) ExpansionResult {
	if maxDepth < 1 {
		maxDepth = e.maxDepth
	}
	key := fmt.Sprintf("%s|%d", Normalize(skillName), maxDepth)
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}
	result := e.graph.Expand(skillName, maxDepth, e.maxResults)
	e.cache.Set(key, result)
	return result
}

// ClearCache empties the memoization cache; exposed for test isolation.
func (e *Expander) ClearCache() {
	e.cache.Clear()
}

// Graph exposes the underlying taxonomy.
func (e *Expander) Graph() *Graph {
	return e.graph
}
