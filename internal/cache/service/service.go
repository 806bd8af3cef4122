package service

import (
	"context"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/cache"
	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// Ensure CacheService can stand in for the upstream caller
var _ interfaces.ContractCaller = (*CacheService)(nil)

// CacheService is a read-through cache in front of a ContractCaller.
// Results are keyed per chain; SetChainID switches the namespace.
type CacheService struct {
	upstream        interfaces.ContractCaller
	cache           interfaces.LevelAwareCache
	keyBuilder      interfaces.KeyBuilder
	cacheClassifier interfaces.CacheRulesClassifier
	abis            *chain.ABIs
	chainID         atomic.Uint64
	logger          *zap.Logger
}

// NewCacheService creates a caching caller for chainID
func NewCacheService(
	upstream interfaces.ContractCaller,
	cache interfaces.LevelAwareCache,
	keyBuilder interfaces.KeyBuilder,
	cacheClassifier interfaces.CacheRulesClassifier,
	abis *chain.ABIs,
	chainID uint64,
	logger *zap.Logger,
) *CacheService {
	s := &CacheService{
		upstream:        upstream,
		cache:           cache,
		keyBuilder:      keyBuilder,
		cacheClassifier: cacheClassifier,
		abis:            abis,
		logger:          logger,
	}
	s.chainID.Store(chainID)
	return s
}

// SetChainID changes the chain new lookups are keyed under
func (s *CacheService) SetChainID(chainID uint64) {
	s.chainID.Store(chainID)
}

// ChainID returns the chain lookups are keyed under
func (s *CacheService) ChainID() uint64 {
	return s.chainID.Load()
}

// GetCacheInfo returns the cache type and TTL a call would be stored with
func (s *CacheService) GetCacheInfo(call ethereum.CallMsg, blockNumber *big.Int) models.CacheInfo {
	return s.cacheClassifier.GetTtl(s.chainID.Load(), s.methodName(call.Data), blockNumber != nil)
}

// CallContract serves fresh cached results, otherwise calls upstream and
// stores the result. When upstream fails a stale entry is served instead.
// Live reads (cache.WithLiveRead) always go upstream and never fall back.
func (s *CacheService) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	cacheInfo := s.GetCacheInfo(call, blockNumber)
	cacheType := string(cacheInfo.CacheType)

	if cacheInfo.TTL == 0 {
		metrics.RecordCallCacheRequest(cacheType, "bypass")
		return s.upstream.CallContract(ctx, call, blockNumber)
	}

	key, err := s.keyBuilder.Build(s.chainID.Load(), call, blockNumber)
	if err != nil {
		s.logger.Debug("Cannot build call cache key, bypassing cache", zap.Error(err))
		metrics.RecordCallCacheRequest(cacheType, "bypass")
		return s.upstream.CallContract(ctx, call, blockNumber)
	}

	live := cache.IsLiveRead(ctx)
	if !live {
		result := s.cache.GetWithLevel(key)
		if result.Found && result.Entry != nil && result.Entry.IsFresh() {
			metrics.RecordCallCacheRequest(cacheType, strings.ToLower(string(result.Level)))
			return copyBytes(result.Entry.Data), nil
		}
	}

	data, err := s.upstream.CallContract(ctx, call, blockNumber)
	if err != nil {
		if live {
			return nil, err
		}
		if stale, ok := s.cache.GetStale(key); ok {
			s.logger.Warn("Upstream call failed, serving stale result",
				zap.String("key", key),
				zap.Error(err))
			metrics.RecordCallCacheRequest(cacheType, "stale")
			return copyBytes(stale.Data), nil
		}
		return nil, err
	}

	outcome := "miss"
	if live {
		outcome = "live"
	}
	metrics.RecordCallCacheRequest(cacheType, outcome)
	s.cache.Set(key, data, models.TTL{
		Fresh: cacheInfo.TTL,
		Stale: cacheInfo.TTL / 10, // stale TTL is 10% of fresh TTL
	})
	return data, nil
}

func (s *CacheService) methodName(data []byte) string {
	if s.abis == nil {
		return ""
	}
	method, ok := s.abis.MethodBySelector(data)
	if !ok {
		return ""
	}
	return method.RawName
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
