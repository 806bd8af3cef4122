package l2

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the shared L2 call cache on KeyDB
type KeyDBCache struct {
	client interfaces.KeyDbClient
	config *config.KeyDBConfig
	logger *zap.Logger
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.KeyDBConfig, client interfaces.KeyDbClient, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client: client,
		config: cfg,
		logger: logger,
	}
}

// Get retrieves a fresh or stale entry that has not expired yet
func (kc *KeyDBCache) Get(key string) (*models.CacheEntry, bool) {
	return kc.load(key)
}

// GetStale retrieves an entry regardless of freshness (for stale-if-error)
func (kc *KeyDBCache) GetStale(key string) (*models.CacheEntry, bool) {
	return kc.load(key)
}

func (kc *KeyDBCache) load(key string) (*models.CacheEntry, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetReadTimeout())
	defer cancel()

	data, err := kc.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		kc.logger.Error("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		kc.client.Del(ctx, key)
		return nil, false
	}

	if entry.IsExpired() {
		kc.client.Del(ctx, key)
		return nil, false
	}

	return &entry, true
}

// Set stores value in KeyDB with the total (fresh + stale) expiration
func (kc *KeyDBCache) Set(key string, val []byte, ttl models.TTL) {
	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	entry := models.NewCacheEntry(val, time.Now(), ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		kc.logger.Error("Failed to marshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "encode")
		return
	}

	if err := kc.client.Set(ctx, key, data, ttl.Fresh+ttl.Stale).Err(); err != nil {
		kc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

// Delete removes entry from KeyDB cache
func (kc *KeyDBCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Del(ctx, key).Err(); err != nil {
		kc.logger.Error("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
	}
}
