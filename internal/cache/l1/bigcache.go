package l1

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/scheduler"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the in-process L1 call cache
type BigCache struct {
	cache            *bigcache.BigCache
	logger           *zap.Logger
	metricsScheduler *scheduler.Scheduler
}

// NewBigCache creates a new BigCache instance
func NewBigCache(bigcacheCfg *config.BigCacheConfig, logger *zap.Logger) (*BigCache, error) {
	cfg := bigcache.DefaultConfig(10 * time.Minute)
	cfg.HardMaxCacheSize = bigcacheCfg.Size // MB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:  cache,
		logger: logger,
	}
	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a fresh or stale entry that has not expired yet
func (bc *BigCache) Get(key string) (*models.CacheEntry, bool) {
	return bc.load(key)
}

// GetStale retrieves an entry regardless of freshness (for stale-if-error)
func (bc *BigCache) GetStale(key string) (*models.CacheEntry, bool) {
	return bc.load(key)
}

func (bc *BigCache) load(key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key)
		return nil, false
	}

	if entry.IsExpired() {
		_ = bc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores value in cache with TTL
func (bc *BigCache) Set(key string, val []byte, ttl models.TTL) {
	entry := models.NewCacheEntry(val, time.Now(), ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// Delete removes entry from cache
func (bc *BigCache) Delete(key string) {
	_ = bc.cache.Delete(key)
}

// Reset drops every entry, used when the active chain changes
func (bc *BigCache) Reset() error {
	return bc.cache.Reset()
}

// Close stops metrics collection and closes the cache
func (bc *BigCache) Close() error {
	bc.stopMetricsCollection()
	return bc.cache.Close()
}

func (bc *BigCache) startMetricsCollection() {
	bc.metricsScheduler = scheduler.New(30*time.Second, bc.updateMetrics)
	bc.metricsScheduler.Start()

	bc.updateMetrics()
	bc.logger.Debug("Started L1 cache metrics collection")
}

func (bc *BigCache) stopMetricsCollection() {
	if bc.metricsScheduler != nil {
		bc.metricsScheduler.Stop()
		bc.logger.Debug("Stopped L1 cache metrics collection")
	}
}

func (bc *BigCache) updateMetrics() {
	metrics.UpdateL1CacheCapacity(int64(bc.cache.Capacity()))
	metrics.UpdateCacheKeys("l1", int64(bc.cache.Len()))
}
