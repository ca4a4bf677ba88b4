package merchant

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wanderinggate/merchant-service/internal/domain"
)

// Cache holds discount-free merchant views for the anonymous catalog path.
// Entries expire on their own; trades additionally invalidate the affected
// merchant so stock counts never lag a committed trade.
type Cache struct {
	lru *expirable.LRU[int, domain.MerchantView]
}

// NewCache builds a cache with the given capacity and TTL. A zero size
// disables caching entirely; every lookup misses.
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[int, domain.MerchantView](size, nil, ttl)}
}

// Get returns the cached view for a merchant, if present and fresh.
func (c *Cache) Get(merchantID int) (domain.MerchantView, bool) {
	return c.lru.Get(merchantID)
}

// Put stores one merchant view.
func (c *Cache) Put(v domain.MerchantView) {
	c.lru.Add(v.ID, v)
}

// PutAll stores a full catalog snapshot.
func (c *Cache) PutAll(views []domain.MerchantView) {
	for _, v := range views {
		c.Put(v)
	}
}

// All returns every cached view. ok is false when the cache is empty, so
// callers can tell "no data" apart from an empty catalog.
func (c *Cache) All() ([]domain.MerchantView, bool) {
	views := c.lru.Values()
	return views, len(views) > 0
}

// Invalidate drops one merchant's cached view after its stock or profile
// changes.
func (c *Cache) Invalidate(merchantID int) {
	c.lru.Remove(merchantID)
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}
