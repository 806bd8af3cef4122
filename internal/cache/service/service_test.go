package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-reactpad-cache/internal/cache"
	"go-reactpad-cache/internal/cache/l1"
	"go-reactpad-cache/internal/cache/multi"
	"go-reactpad-cache/internal/cache_rules"
	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/config"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/interfaces/mock"
	"go-reactpad-cache/internal/models"
)

var tokenAddress = common.HexToAddress("0x1111111111111111111111111111111111111111")

func symbolCall(t *testing.T) ethereum.CallMsg {
	t.Helper()
	data, err := chain.MustABIs().ERC20.Pack("symbol")
	require.NoError(t, err)
	return ethereum.CallMsg{To: &tokenAddress, Data: data}
}

type fixture struct {
	upstream   *mock.MockContractCaller
	cache      *mock.MockLevelAwareCache
	classifier *mock.MockCacheRulesClassifier
	service    *CacheService
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		upstream:   mock.NewMockContractCaller(ctrl),
		cache:      mock.NewMockLevelAwareCache(ctrl),
		classifier: mock.NewMockCacheRulesClassifier(ctrl),
	}
	f.service = NewCacheService(f.upstream, f.cache, cache.NewKeyBuilder(), f.classifier,
		chain.MustABIs(), 56, zaptest.NewLogger(t))
	return f
}

func expectedKey(t *testing.T, chainID uint64, call ethereum.CallMsg, block *big.Int) string {
	key, err := cache.NewKeyBuilder().Build(chainID, call, block)
	require.NoError(t, err)
	return key
}

func TestCallContract_FreshHit(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)
	entry := models.NewCacheEntry([]byte("cached"), time.Now(), models.TTL{Fresh: time.Hour})

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: time.Hour, CacheType: models.CacheTypePermanent})
	f.cache.EXPECT().GetWithLevel(key).
		Return(models.CacheResult{Entry: &entry, Level: models.CacheLevelL1, Found: true})

	data, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), data)
}

func TestCallContract_MissStoresResult(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: 100 * time.Second, CacheType: models.CacheTypeShort})
	f.cache.EXPECT().GetWithLevel(key).Return(models.CacheResult{Level: models.CacheLevelMiss})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("live"), nil)
	f.cache.EXPECT().Set(key, []byte("live"), models.TTL{Fresh: 100 * time.Second, Stale: 10 * time.Second})

	data, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("live"), data)
}

func TestCallContract_StaleEntryRefreshed(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)
	stale := models.NewCacheEntry([]byte("old"), time.Now().Add(-time.Minute), models.TTL{Fresh: time.Second, Stale: time.Hour})

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: time.Second, CacheType: models.CacheTypeShort})
	f.cache.EXPECT().GetWithLevel(key).
		Return(models.CacheResult{Entry: &stale, Level: models.CacheLevelL2, Found: true})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("new"), nil)
	f.cache.EXPECT().Set(key, []byte("new"), gomock.Any())

	data, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestCallContract_StaleIfError(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)
	stale := models.NewCacheEntry([]byte("old"), time.Now().Add(-time.Minute), models.TTL{Fresh: time.Second, Stale: time.Hour})

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: time.Second, CacheType: models.CacheTypeShort})
	f.cache.EXPECT().GetWithLevel(key).Return(models.CacheResult{Level: models.CacheLevelMiss})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return(nil, errors.New("rpc down"))
	f.cache.EXPECT().GetStale(key).Return(&stale, true)

	data, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), data)
}

func TestCallContract_ErrorWithoutStale(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)
	upstreamErr := errors.New("rpc down")

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: time.Second, CacheType: models.CacheTypeShort})
	f.cache.EXPECT().GetWithLevel(key).Return(models.CacheResult{Level: models.CacheLevelMiss})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return(nil, upstreamErr)
	f.cache.EXPECT().GetStale(key).Return(nil, false)

	_, err := f.service.CallContract(context.Background(), call, nil)
	assert.ErrorIs(t, err, upstreamErr)
}

func TestCallContract_BypassWhenNotCacheable(t *testing.T) {
	f := newFixture(t)
	data, err := chain.MustABIs().ERC20.Pack("balanceOf", tokenAddress)
	require.NoError(t, err)
	call := ethereum.CallMsg{To: &tokenAddress, Data: data}

	f.classifier.EXPECT().GetTtl(uint64(56), "balanceOf", false).
		Return(models.CacheInfo{TTL: 0, CacheType: models.CacheTypeNone})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte{1}, nil)

	out, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, out)
}

func TestCallContract_UnknownSelector(t *testing.T) {
	f := newFixture(t)
	call := ethereum.CallMsg{To: &tokenAddress, Data: []byte{0xde, 0xad, 0xbe, 0xef}}

	f.classifier.EXPECT().GetTtl(uint64(56), "", false).
		Return(models.CacheInfo{TTL: 0, CacheType: models.CacheTypeNone})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return(nil, nil)

	_, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
}

func TestCallContract_PinnedBlock(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	block := big.NewInt(1234)
	key := expectedKey(t, 56, call, block)

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", true).
		Return(models.CacheInfo{TTL: time.Hour, CacheType: models.CacheTypePermanent})
	f.cache.EXPECT().GetWithLevel(key).Return(models.CacheResult{Level: models.CacheLevelMiss})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, block).Return([]byte("v"), nil)
	f.cache.EXPECT().Set(key, []byte("v"), models.TTL{Fresh: time.Hour, Stale: 6 * time.Minute})

	_, err := f.service.CallContract(context.Background(), call, block)
	require.NoError(t, err)
}

func TestSetChainID_ChangesKeyNamespace(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	f.service.SetChainID(97)
	assert.Equal(t, uint64(97), f.service.ChainID())

	f.classifier.EXPECT().GetTtl(uint64(97), "symbol", false).
		Return(models.CacheInfo{TTL: time.Hour, CacheType: models.CacheTypePermanent})
	f.cache.EXPECT().GetWithLevel(expectedKey(t, 97, call, nil)).Return(models.CacheResult{Level: models.CacheLevelMiss})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("v"), nil)
	f.cache.EXPECT().Set(expectedKey(t, 97, call, nil), gomock.Any(), gomock.Any())

	_, err := f.service.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
}

func TestCallContract_LiveReadSkipsFreshEntry(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)
	key := expectedKey(t, 56, call, nil)

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: 30 * time.Second, CacheType: models.CacheTypeShort})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("after"), nil)
	f.cache.EXPECT().Set(key, []byte("after"), models.TTL{Fresh: 30 * time.Second, Stale: 3 * time.Second})

	data, err := f.service.CallContract(cache.WithLiveRead(context.Background()), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("after"), data)
}

func TestCallContract_LiveReadDoesNotServeStale(t *testing.T) {
	f := newFixture(t)
	call := symbolCall(t)

	f.classifier.EXPECT().GetTtl(uint64(56), "symbol", false).
		Return(models.CacheInfo{TTL: 30 * time.Second, CacheType: models.CacheTypeShort})
	f.upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return(nil, errors.New("node down"))

	_, err := f.service.CallContract(cache.WithLiveRead(context.Background()), call, nil)
	assert.EqualError(t, err, "node down")
}

func TestCallContract_LiveReadSeesChangeBehindCachedResult(t *testing.T) {
	logger := zaptest.NewLogger(t)
	bc, err := l1.NewBigCache(&config.BigCacheConfig{Enabled: true, Size: 8}, logger)
	require.NoError(t, err)
	layers := multi.NewMultiCache([]interfaces.Cache{bc}, logger, false)
	rules := cache_rules.NewClassifier(logger, cache_rules.NewCacheConfig(cache_rules.DefaultCacheRulesConfig(), logger))

	upstream := mock.NewMockContractCaller(gomock.NewController(t))
	svc := NewCacheService(upstream, layers, cache.NewKeyBuilder(), rules, chain.MustABIs(), 97, logger)

	data, err := chain.MustABIs().TokenFactory.Pack("getTokensByOwner", tokenAddress)
	require.NoError(t, err)
	call := ethereum.CallMsg{To: &tokenAddress, Data: data}

	gomock.InOrder(
		upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("before"), nil),
		upstream.EXPECT().CallContract(gomock.Any(), call, nil).Return([]byte("after"), nil),
	)

	got, err := svc.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("before"), got)

	got, err = svc.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("before"), got, "served from the call cache")

	got, err = svc.CallContract(cache.WithLiveRead(context.Background()), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("after"), got)

	got, err = svc.CallContract(context.Background(), call, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("after"), got, "live read refreshed the cached result")
}
