package cache_rules

import (
	"time"

	"go-reactpad-cache/internal/models"
)

// TTLDefaults represents TTL settings for different cache types
type TTLDefaults map[models.CacheType]time.Duration

// CacheRulesConfig maps contract method names to cache types. TTL defaults are
// keyed by decimal chain ID, with "default" as the fallback.
type CacheRulesConfig struct {
	ChainsTTLDefaults map[string]TTLDefaults      `yaml:"ttl_defaults"`
	CacheRules        map[string]models.CacheType `yaml:"cache_rules"`
}

// DefaultCacheRulesConfig is used when no rules file is configured
func DefaultCacheRulesConfig() *CacheRulesConfig {
	return &CacheRulesConfig{
		ChainsTTLDefaults: map[string]TTLDefaults{
			"default": {
				models.CacheTypePermanent: 24 * time.Hour,
				models.CacheTypeShort:     30 * time.Second,
				models.CacheTypeMinimal:   5 * time.Second,
			},
		},
		CacheRules: map[string]models.CacheType{
			// immutable once deployed
			"name":     models.CacheTypePermanent,
			"symbol":   models.CacheTypePermanent,
			"decimals": models.CacheTypePermanent,
			"token0":   models.CacheTypePermanent,
			"token1":   models.CacheTypePermanent,
			"allPairs": models.CacheTypePermanent,

			"totalSupply":      models.CacheTypeShort,
			"owner":            models.CacheTypeShort,
			"getTokensByOwner": models.CacheTypeShort,
			"getUserLocks":     models.CacheTypeShort,
			"getLock":          models.CacheTypeShort,
			"allPairsLength":   models.CacheTypeShort,
			"getAllPresales":   models.CacheTypeShort,
			"aggregate3":       models.CacheTypeShort,

			"getPresaleInfo": models.CacheTypeMinimal,
			"claimEnabled":   models.CacheTypeMinimal,
			"refundsEnabled": models.CacheTypeMinimal,
			"getReserves":    models.CacheTypeMinimal,

			"balanceOf":     models.CacheTypeNone,
			"allowance":     models.CacheTypeNone,
			"contributions": models.CacheTypeNone,
			"isWhitelisted": models.CacheTypeNone,
		},
	}
}
