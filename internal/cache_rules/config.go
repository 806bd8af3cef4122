package cache_rules

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// CacheConfig implements the CacheRulesConfig interface
type CacheConfig struct {
	config *CacheRulesConfig
	logger *zap.Logger
}

// Ensure CacheConfig implements the CacheRulesConfig interface
var _ interfaces.CacheRulesConfig = (*CacheConfig)(nil)

// NewCacheConfig creates a new CacheConfig instance
func NewCacheConfig(config *CacheRulesConfig, logger *zap.Logger) *CacheConfig {
	if config == nil {
		panic("config cannot be nil")
	}
	return &CacheConfig{
		config: config,
		logger: logger,
	}
}

// GetTtlForCacheType implements CacheRulesConfig interface
func (cr *CacheConfig) GetTtlForCacheType(chainID uint64, cacheType models.CacheType) time.Duration {
	if len(cr.config.ChainsTTLDefaults) == 0 {
		return cr.getFallbackTTL(cacheType)
	}

	if chainID != 0 {
		if ttl := cr.lookupTTL(strconv.FormatUint(chainID, 10), cacheType); ttl > 0 {
			return ttl
		}
	}

	return cr.lookupTTL("default", cacheType)
}

func (cr *CacheConfig) lookupTTL(key string, cacheType models.CacheType) time.Duration {
	ttlDefaults, ok := cr.config.ChainsTTLDefaults[key]
	if !ok {
		return 0
	}
	return ttlDefaults[cacheType]
}

// GetAllMethods returns all configured contract methods
func (cr *CacheConfig) GetAllMethods() []string {
	methods := make([]string, 0, len(cr.config.CacheRules))
	for method := range cr.config.CacheRules {
		methods = append(methods, method)
	}
	return methods
}

func (cr *CacheConfig) getFallbackTTL(cacheType models.CacheType) time.Duration {
	fallbackTTLs := map[models.CacheType]time.Duration{
		models.CacheTypePermanent: 24 * time.Hour,
		models.CacheTypeShort:     5 * time.Second,
		models.CacheTypeMinimal:   0,
	}
	return fallbackTTLs[cacheType]
}

// GetCacheTypeForMethod returns the configured type; unknown methods are not cached
func (cr *CacheConfig) GetCacheTypeForMethod(method string) models.CacheType {
	if method == "" || cr.config.CacheRules == nil {
		return models.CacheTypeNone
	}

	if cacheType, exists := cr.config.CacheRules[method]; exists {
		return cacheType
	}

	if cr.logger != nil {
		cr.logger.Debug("Method not found in cache rules, not caching", zap.String("method", method))
	}
	return models.CacheTypeNone
}
