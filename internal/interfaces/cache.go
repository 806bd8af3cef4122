package interfaces

import (
	"go-reactpad-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for contract call result caches
type Cache interface {
	Get(key string) (*models.CacheEntry, bool)      // returns fresh-or-stale entry and found flag
	GetStale(key string) (*models.CacheEntry, bool) // stale-if-error, returns entry and found flag
	Set(key string, val []byte, ttl models.TTL)
	Delete(key string)
}

// LevelAwareCache is a Cache that reports which layer answered a lookup
type LevelAwareCache interface {
	Cache
	GetWithLevel(key string) models.CacheResult
}
