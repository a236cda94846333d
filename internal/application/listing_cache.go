package application

import (
	"sync"
	"time"

	"github.com/moraleja/portfolio/internal/domain"
)

// ListingCacheEntry is one cached gallery listing.
type ListingCacheEntry struct {
	Assets    []domain.GalleryAsset
	Timestamp time.Time
}

// ListingCache keeps recent gallery listings in memory so public page views do
// not hit the database every time. Writes to assets or projects invalidate it.
type ListingCache struct {
	cache map[string]*ListingCacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{
		cache: make(map[string]*ListingCacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the listing for key unless it has expired.
func (lc *ListingCache) Get(key string) ([]domain.GalleryAsset, bool) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	entry, exists := lc.cache[key]
	if !exists || lc.now().Sub(entry.Timestamp) > lc.ttl {
		return nil, false
	}
	return entry.Assets, true
}

func (lc *ListingCache) Set(key string, assets []domain.GalleryAsset) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.cache[key] = &ListingCacheEntry{
		Assets:    assets,
		Timestamp: lc.now(),
	}
}

// Cleanup drops expired entries.
func (lc *ListingCache) Cleanup() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	now := lc.now()
	for key, entry := range lc.cache {
		if now.Sub(entry.Timestamp) > lc.ttl {
			delete(lc.cache, key)
		}
	}
}

// Clear drops everything.
func (lc *ListingCache) Clear() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.cache = make(map[string]*ListingCacheEntry)
}

func (lc *ListingCache) Size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return len(lc.cache)
}
