package cache_rules

import (
	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// Classifier implements the CacheRulesClassifier interface
type Classifier struct {
	logger    *zap.Logger
	configTTL interfaces.CacheRulesConfig
}

// Ensure Classifier implements the CacheRulesClassifier interface
var _ interfaces.CacheRulesClassifier = (*Classifier)(nil)

// NewClassifier creates a new Classifier instance
func NewClassifier(logger *zap.Logger, configTTL interfaces.CacheRulesConfig) *Classifier {
	return &Classifier{
		logger:    logger,
		configTTL: configTTL,
	}
}

// GetTtl implements CacheRulesClassifier interface. A call pinned to a block
// number reads immutable state, so any cacheable method gets the permanent TTL.
func (c *Classifier) GetTtl(chainID uint64, method string, pinned bool) models.CacheInfo {
	none := models.CacheInfo{TTL: 0, CacheType: models.CacheTypeNone}
	if method == "" {
		return none
	}

	cacheType := c.configTTL.GetCacheTypeForMethod(method)
	if cacheType == models.CacheTypeNone {
		return none
	}
	if pinned {
		cacheType = models.CacheTypePermanent
	}

	ttl := c.configTTL.GetTtlForCacheType(chainID, cacheType)
	if ttl == 0 {
		return none
	}

	return models.CacheInfo{TTL: ttl, CacheType: cacheType}
}
