package interfaces

import (
	"time"

	"go-reactpad-cache/internal/models"
)

//go:generate mockgen -package=mock -source=cache_rules_config.go -destination=mock/cache_rules_config.go

// CacheRulesConfig resolves cache types and TTLs for contract methods
type CacheRulesConfig interface {
	// GetCacheTypeForMethod returns the cache type configured for a contract method name
	GetCacheTypeForMethod(method string) models.CacheType
	// GetTtlForCacheType returns the TTL of a cache type on a chain
	GetTtlForCacheType(chainID uint64, cacheType models.CacheType) time.Duration
}

// CacheRulesClassifier decides how a contract call result may be cached
type CacheRulesClassifier interface {
	// GetTtl returns cache information for a call identified by its method name
	GetTtl(chainID uint64, method string, pinned bool) models.CacheInfo
}
