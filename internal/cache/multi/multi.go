package multi

import (
	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

// MultiCache tries an ordered list of caches (L1 first) and writes through to all of them
type MultiCache struct {
	caches            []interfaces.Cache
	logger            *zap.Logger
	enablePropagation bool
}

// NewMultiCache creates a new MultiCache. With propagation enabled, a hit in a
// lower level is copied into the levels above it.
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger, enablePropagation bool) *MultiCache {
	return &MultiCache{
		caches:            caches,
		logger:            logger,
		enablePropagation: enablePropagation,
	}
}

// Get retrieves the entry from the first cache that has the key
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	result := mc.GetWithLevel(key)
	return result.Entry, result.Found
}

// GetWithLevel retrieves the entry and reports which level answered
func (mc *MultiCache) GetWithLevel(key string) models.CacheResult {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return models.CacheResult{Level: models.CacheLevelMiss}
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(key)
		if !found || entry == nil {
			continue
		}
		if mc.enablePropagation && i > 0 {
			mc.propagate(key, entry, i)
		}
		return models.CacheResult{Entry: entry, Level: levelFor(i), Found: true}
	}
	return models.CacheResult{Level: models.CacheLevelMiss}
}

// GetStale retrieves a possibly stale entry from the first cache that has the key
func (mc *MultiCache) GetStale(key string) (*models.CacheEntry, bool) {
	for _, cache := range mc.caches {
		if entry, found := cache.GetStale(key); found && entry != nil {
			return entry, true
		}
	}
	return nil, false
}

// Set stores the value in all caches
func (mc *MultiCache) Set(key string, val []byte, ttl models.TTL) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(key, val, ttl)
	}
}

// Delete removes the entry from all caches
func (mc *MultiCache) Delete(key string) {
	for _, cache := range mc.caches {
		cache.Delete(key)
	}
}

// GetCacheCount returns the number of caches in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}

// propagate copies an entry found at level i into the faster levels, keeping
// its remaining lifetime
func (mc *MultiCache) propagate(key string, entry *models.CacheEntry, found int) {
	ttl := entry.RemainingTTL()
	if ttl.Fresh <= 0 && ttl.Stale <= 0 {
		return
	}
	for i := 0; i < found; i++ {
		mc.caches[i].Set(key, entry.Data, ttl)
	}
	mc.logger.Debug("Propagated cache entry", zap.String("key", key), zap.Int("from_level", found))
}

func levelFor(i int) models.CacheLevel {
	switch i {
	case 0:
		return models.CacheLevelL1
	case 1:
		return models.CacheLevelL2
	default:
		return models.CacheLevelMiss
	}
}
