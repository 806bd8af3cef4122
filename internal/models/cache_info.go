package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheType represents how long a contract call result may be reused
type CacheType string

const (
	CacheTypePermanent CacheType = "permanent"
	CacheTypeShort     CacheType = "short"
	CacheTypeMinimal   CacheType = "minimal"
	CacheTypeNone      CacheType = "none"
)

// UnmarshalYAML implements custom YAML unmarshaling for CacheType
func (c *CacheType) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch str {
	case "permanent", "short", "minimal", "none":
		*c = CacheType(str)
		return nil
	default:
		return fmt.Errorf("invalid cache type '%s': must be one of 'permanent', 'short', 'minimal', 'none'", str)
	}
}

// CacheInfo contains cache configuration information
type CacheInfo struct {
	TTL       time.Duration `json:"ttl"`
	CacheType CacheType     `json:"cache_type"`
}

// TTL represents cache time-to-live configuration
type TTL struct {
	Fresh time.Duration // How long the data is considered fresh
	Stale time.Duration // How long stale data can be served (stale-if-error)
}

// CacheLevel identifies which layer answered a contract call lookup
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "L1"
	CacheLevelL2   CacheLevel = "L2"
	CacheLevelMiss CacheLevel = "MISS"
)

// CacheResult is the outcome of a level-aware lookup
type CacheResult struct {
	Entry *CacheEntry
	Level CacheLevel
	Found bool
}

// CacheEntry is a raw contract call result stored by the call cache layers.
// Timestamps are unix seconds.
type CacheEntry struct {
	Data      []byte `json:"data"`
	CreatedAt int64  `json:"created_at"`
	StaleAt   int64  `json:"stale_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewCacheEntry builds an entry created at now with the given TTL
func NewCacheEntry(data []byte, now time.Time, ttl TTL) CacheEntry {
	created := now.Unix()
	return CacheEntry{
		Data:      data,
		CreatedAt: created,
		StaleAt:   created + int64(ttl.Fresh.Seconds()),
		ExpiresAt: created + int64(ttl.Fresh.Seconds()) + int64(ttl.Stale.Seconds()),
	}
}

// IsFresh reports whether the entry is still within its fresh window
func (e *CacheEntry) IsFresh() bool {
	return time.Now().Unix() < e.StaleAt
}

// IsExpired reports whether the entry is past its stale window too
func (e *CacheEntry) IsExpired() bool {
	return time.Now().Unix() >= e.ExpiresAt
}

// RemainingTTL returns the fresh and stale windows left from now
func (e *CacheEntry) RemainingTTL() TTL {
	now := time.Now().Unix()
	fresh := e.StaleAt - now
	if fresh < 0 {
		fresh = 0
	}
	stale := e.ExpiresAt - now - fresh
	if stale < 0 {
		stale = 0
	}
	return TTL{Fresh: time.Duration(fresh) * time.Second, Stale: time.Duration(stale) * time.Second}
}
