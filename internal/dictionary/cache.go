package dictionary

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/at-ishikawa/latinlookup/internal/dictionary/latinwords"
)

// Cache holds parse results by lookup key for the lifetime of the process.
type Cache interface {
	Get(key string) (latinwords.ParseResult, bool)
	Add(key string, result latinwords.ParseResult)
	Len() int
}

// NewCache returns an unbounded cache when capacity is not positive, and an
// LRU cache holding at most capacity results otherwise.
func NewCache(capacity int) (Cache, error) {
	if capacity <= 0 {
		return NewMemoryCache(), nil
	}
	cache, err := NewLRUCache(capacity)
	if err != nil {
		return nil, fmt.Errorf("NewLRUCache > %w", err)
	}
	return cache, nil
}

// MemoryCache is an unbounded map without eviction.
type MemoryCache struct {
	mu      sync.RWMutex
	results map[string]latinwords.ParseResult
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		results: make(map[string]latinwords.ParseResult),
	}
}

func (c *MemoryCache) Get(key string) (latinwords.ParseResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[key]
	return result, ok
}

func (c *MemoryCache) Add(key string, result latinwords.ParseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = result
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// LRUCache evicts the least recently used result once full.
type LRUCache struct {
	cache *lru.Cache[string, latinwords.ParseResult]
}

func NewLRUCache(capacity int) (*LRUCache, error) {
	cache, err := lru.New[string, latinwords.ParseResult](capacity)
	if err != nil {
		return nil, fmt.Errorf("lru.New > %w", err)
	}
	return &LRUCache{cache: cache}, nil
}

func (c *LRUCache) Get(key string) (latinwords.ParseResult, bool) {
	return c.cache.Get(key)
}

func (c *LRUCache) Add(key string, result latinwords.ParseResult) {
	c.cache.Add(key, result)
}

func (c *LRUCache) Len() int {
	return c.cache.Len()
}
