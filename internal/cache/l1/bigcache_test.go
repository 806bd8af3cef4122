package l1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/models"
)

func newTestBigCache(t *testing.T) *BigCache {
	cache, err := NewBigCache(&config.BigCacheConfig{Enabled: true, Size: 10}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewBigCache(t *testing.T) {
	cache := newTestBigCache(t)

	assert.NotNil(t, cache.cache)
	assert.NotNil(t, cache.metricsScheduler)
	assert.True(t, cache.metricsScheduler.IsRunning())
}

func TestBigCache_SetAndGetFresh(t *testing.T) {
	cache := newTestBigCache(t)

	cache.Set("test-key", []byte("test-value"), models.TTL{Fresh: time.Minute, Stale: 30 * time.Second})

	entry, found := cache.Get("test-key")
	require.True(t, found)
	assert.Equal(t, []byte("test-value"), entry.Data)
	assert.True(t, entry.IsFresh())
}

func TestBigCache_StaleEntryStillServed(t *testing.T) {
	cache := newTestBigCache(t)

	now := time.Now().Unix()
	raw, err := json.Marshal(models.CacheEntry{
		Data:      []byte("stale-value"),
		CreatedAt: now - 100,
		StaleAt:   now - 10,
		ExpiresAt: now + 100,
	})
	require.NoError(t, err)
	require.NoError(t, cache.cache.Set("stale-key", raw))

	entry, found := cache.Get("stale-key")
	require.True(t, found)
	assert.False(t, entry.IsFresh())

	entry, found = cache.GetStale("stale-key")
	require.True(t, found)
	assert.Equal(t, []byte("stale-value"), entry.Data)
}

func TestBigCache_ExpiredEntryIsDropped(t *testing.T) {
	cache := newTestBigCache(t)

	now := time.Now().Unix()
	raw, err := json.Marshal(models.CacheEntry{
		Data:      []byte("old"),
		CreatedAt: now - 100,
		StaleAt:   now - 50,
		ExpiresAt: now - 1,
	})
	require.NoError(t, err)
	require.NoError(t, cache.cache.Set("expired-key", raw))

	_, found := cache.GetStale("expired-key")
	assert.False(t, found)

	_, err = cache.cache.Get("expired-key")
	assert.Error(t, err, "expired entry should be deleted")
}

func TestBigCache_CorruptedEntry(t *testing.T) {
	cache := newTestBigCache(t)

	require.NoError(t, cache.cache.Set("bad-key", []byte("not-json")))

	_, found := cache.Get("bad-key")
	assert.False(t, found)
}

func TestBigCache_DeleteAndReset(t *testing.T) {
	cache := newTestBigCache(t)
	ttl := models.TTL{Fresh: time.Minute}

	cache.Set("a", []byte("1"), ttl)
	cache.Set("b", []byte("2"), ttl)

	cache.Delete("a")
	_, found := cache.Get("a")
	assert.False(t, found)

	require.NoError(t, cache.Reset())
	_, found = cache.Get("b")
	assert.False(t, found)
}
