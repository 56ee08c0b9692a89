package inmemory

import (
	"sync"
	"time"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

// KeywordCache keeps vocabulary entries by exact name with a per-entry TTL.
type KeywordCache struct {
	mu    sync.RWMutex
	items map[string]keywordItem
	now   func() time.Time
}

type keywordItem struct {
	value     keyworddomain.Keyword
	expiresAt time.Time
}

func NewKeywordCache() *KeywordCache {
	return &KeywordCache{
		items: make(map[string]keywordItem),
		now:   time.Now,
	}
}

func (c *KeywordCache) GetByName(name string) (*keyworddomain.Keyword, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[name]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[name]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, name)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *KeywordCache) SetMany(keywords []keyworddomain.Keyword, ttl time.Duration) {
	if ttl <= 0 || len(keywords) == 0 {
		return
	}

	expiresAt := c.now().Add(ttl)
	c.mu.Lock()
	for _, keyword := range keywords {
		c.items[keyword.Name] = keywordItem{value: keyword, expiresAt: expiresAt}
	}
	c.mu.Unlock()
}

func (c *KeywordCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]keywordItem)
	c.mu.Unlock()
}
