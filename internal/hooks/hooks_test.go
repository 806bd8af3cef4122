package hooks

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-reactpad-cache/internal/cache"
	"go-reactpad-cache/internal/interfaces/mock"
	"go-reactpad-cache/internal/metadata"
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/store"
)

const wallet = "0xAbCdEf0123456789AbCdEf0123456789AbCdEf01"

var walletKey = models.NormalizeAddress(wallet)

type fixture struct {
	store    *store.Store
	clock    *clock.Mock
	reader   *mock.MockChainReader
	metadata *mock.MockMetadataSource
	hooks    *Hooks
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	f := &fixture{
		clock:    clk,
		store:    store.New(clk, 5*time.Minute, zaptest.NewLogger(t)),
		reader:   mock.NewMockChainReader(ctrl),
		metadata: mock.NewMockMetadataSource(ctrl),
	}
	f.hooks = New(f.store, f.reader, f.metadata, time.Second, zaptest.NewLogger(t))
	t.Cleanup(f.hooks.Close)
	return f
}

func tokens(symbols ...string) []models.TokenInfo {
	out := make([]models.TokenInfo, len(symbols))
	for i, s := range symbols {
		out[i] = models.TokenInfo{Symbol: s, TotalSupply: models.BigIntFromUint64(uint64(i + 1))}
	}
	return out
}

func TestGet_MissingFetchesSynchronously(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).Return(tokens("AAA"), nil)

	state := f.hooks.UserTokens(wallet).Get(context.Background())

	require.NoError(t, state.Err)
	assert.True(t, state.Found)
	assert.False(t, state.Stale)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "AAA", state.Data[0].Symbol)

	cached, ok := f.store.GetUserTokens(wallet)
	require.True(t, ok)
	assert.Equal(t, state.Data, cached)
}

func TestGet_FreshServedFromCache(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserTokens(wallet, tokens("AAA"))

	state := f.hooks.UserTokens(wallet).Get(context.Background())

	assert.True(t, state.Found)
	assert.Equal(t, f.clock.Now().UnixMilli(), state.FetchedAt)
}

func TestGet_StaleWhileRevalidate(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserTokens(wallet, tokens("OLD"))
	f.clock.Add(6 * time.Minute)

	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).Return(tokens("NEW"), nil)

	state := f.hooks.UserTokens(wallet).Get(context.Background())
	assert.True(t, state.Stale)
	assert.Equal(t, "OLD", state.Data[0].Symbol)

	assert.Eventually(t, func() bool {
		cached, ok := f.store.GetUserTokens(wallet)
		return ok && cached[0].Symbol == "NEW"
	}, time.Second, 5*time.Millisecond)
	assert.False(t, f.store.IsUserTokensStale(wallet))
}

func TestRefetch_FailureKeepsStaleData(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserTokens(wallet, tokens("OLD"))
	fetchedAt := f.clock.Now().UnixMilli()
	f.clock.Add(time.Minute)

	rpcErr := errors.New("rpc unavailable")
	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).Return(nil, rpcErr)

	query := f.hooks.UserTokens(wallet)
	state := query.Refetch(context.Background())

	assert.ErrorIs(t, state.Err, rpcErr)
	assert.True(t, state.Found)
	assert.Equal(t, "OLD", state.Data[0].Symbol)
	assert.Equal(t, fetchedAt, state.FetchedAt)
	assert.False(t, state.IsLoading)

	// the error is remembered for later readers of the same key
	assert.ErrorIs(t, f.hooks.UserTokens(wallet).State().Err, rpcErr)
}

func TestRefetch_SuccessClearsError(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.reader.EXPECT().Markets(gomock.Any()).Return(nil, errors.New("boom")),
		f.reader.EXPECT().Markets(gomock.Any()).Return([]models.Market{{Pair: "0x01"}}, nil),
	)

	query := f.hooks.Markets()
	assert.Error(t, query.Refetch(context.Background()).Err)

	state := query.Refetch(context.Background())
	assert.NoError(t, state.Err)
	assert.Len(t, state.Data, 1)
	assert.NoError(t, query.State().Err)
}

func TestRefetch_PanicBecomesError(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().PresaleAddresses(gomock.Any()).DoAndReturn(func(context.Context) ([]string, error) {
		panic("decoder bug")
	})

	state := f.hooks.PresaleAddresses().Refetch(context.Background())
	require.Error(t, state.Err)
	assert.Contains(t, state.Err.Error(), "panicked")
	assert.False(t, state.IsLoading)
}

func TestRefetch_ConcurrentCallsAreCoalesced(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})

	f.reader.EXPECT().UserLocks(gomock.Any(), walletKey).
		DoAndReturn(func(context.Context, string) ([]models.LockRecord, error) {
			close(started)
			<-release
			return []models.LockRecord{{ID: models.NewBigInt(big.NewInt(7))}}, nil
		}).Times(1)

	var wg sync.WaitGroup
	results := make([]State[[]models.LockRecord], 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = f.hooks.UserLocks(wallet).Refetch(context.Background())
	}()
	<-started

	entry, _ := f.store.UserLocksEntry(wallet)
	assert.True(t, entry.IsLoading)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = f.hooks.UserLocks(wallet).Refetch(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		require.NoError(t, r.Err)
		require.Len(t, r.Data, 1)
		assert.Equal(t, "7", r.Data[0].Key())
	}
	entry, _ = f.store.UserLocksEntry(wallet)
	assert.False(t, entry.IsLoading)
}

func TestRefetch_IsLiveRead(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserTokens(wallet, tokens("OLD"))

	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).
		DoAndReturn(func(ctx context.Context, _ string) ([]models.TokenInfo, error) {
			assert.True(t, cache.IsLiveRead(ctx))
			return tokens("NEW"), nil
		})

	state := f.hooks.UserTokens(wallet).Refetch(context.Background())
	require.NoError(t, state.Err)
	assert.Equal(t, "NEW", state.Data[0].Symbol)
}

func TestRefetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})

	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).
		DoAndReturn(func(ctx context.Context, _ string) ([]models.TokenInfo, error) {
			close(started)
			select {
			case <-release:
				return tokens("RKT"), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}).Times(1)

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan State[[]models.TokenInfo])
	go func() {
		firstDone <- f.hooks.UserTokens(wallet).Get(first)
	}()
	<-started

	secondDone := make(chan State[[]models.TokenInfo])
	go func() {
		secondDone <- f.hooks.UserTokens(wallet).Get(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	abandoned := <-firstDone
	assert.ErrorIs(t, abandoned.Err, context.Canceled)

	close(release)
	state := <-secondDone
	require.NoError(t, state.Err)
	require.True(t, state.Found)
	assert.Equal(t, "RKT", state.Data[0].Symbol)
}

func TestRefetch_DropsResultAfterChainSwitch(t *testing.T) {
	f := newFixture(t)
	release := make(chan struct{})
	started := make(chan struct{})

	f.reader.EXPECT().UserTokens(gomock.Any(), walletKey).
		DoAndReturn(func(context.Context, string) ([]models.TokenInfo, error) {
			close(started)
			<-release
			return tokens("OLDCHAIN"), nil
		})

	done := make(chan State[[]models.TokenInfo])
	go func() {
		done <- f.hooks.UserTokens(wallet).Refetch(context.Background())
	}()
	<-started
	f.store.ClearCache()
	close(release)

	state := <-done
	assert.NoError(t, state.Err)
	assert.False(t, state.Found)

	_, ok := f.store.GetUserTokens(wallet)
	assert.False(t, ok)
	_, exists := f.store.UserTokensEntry(wallet)
	assert.False(t, exists)
}

func TestPresale_WithMetadata(t *testing.T) {
	f := newFixture(t)
	presale := "0x00000000000000000000000000000000000000C3"
	key := models.NormalizeAddress(presale)

	f.reader.EXPECT().Presale(gomock.Any(), key).Return(models.PresaleInfo{Address: key, StartTime: 10}, nil)
	f.metadata.EXPECT().PresaleMetadata(gomock.Any(), key).Return(&models.PresaleMetadata{Name: "Moon"}, nil)

	state := f.hooks.Presale(presale).Get(context.Background())
	require.NoError(t, state.Err)
	assert.Equal(t, int64(10), state.Data.Info.StartTime)
	require.NotNil(t, state.Data.Metadata)
	assert.Equal(t, "Moon", state.Data.Metadata.Name)

	// second read is served from the query cache
	again := f.hooks.Presale(presale).Get(context.Background())
	assert.Equal(t, state.Data, again.Data)
}

func TestPresale_MetadataErrorsAreNotFatal(t *testing.T) {
	f := newFixture(t)
	presale := "0x00000000000000000000000000000000000000c3"

	gomock.InOrder(
		f.reader.EXPECT().Presale(gomock.Any(), presale).Return(models.PresaleInfo{Address: presale}, nil),
		f.metadata.EXPECT().PresaleMetadata(gomock.Any(), presale).Return(nil, metadata.ErrMetadataNotFound),
		f.reader.EXPECT().Presale(gomock.Any(), presale).Return(models.PresaleInfo{Address: presale}, nil),
		f.metadata.EXPECT().PresaleMetadata(gomock.Any(), presale).Return(nil, errors.New("503")),
	)

	state := f.hooks.Presale(presale).Refetch(context.Background())
	require.NoError(t, state.Err)
	assert.Nil(t, state.Data.Metadata)

	state = f.hooks.Presale(presale).Refetch(context.Background())
	require.NoError(t, state.Err)
	assert.Nil(t, state.Data.Metadata)
}

func TestPresale_ClearedOnChainSwitch(t *testing.T) {
	f := newFixture(t)
	presale := "0x00000000000000000000000000000000000000c3"
	f.reader.EXPECT().Presale(gomock.Any(), presale).Return(models.PresaleInfo{Address: presale}, nil)
	f.metadata.EXPECT().PresaleMetadata(gomock.Any(), presale).Return(nil, metadata.ErrMetadataNotFound)

	f.hooks.Presale(presale).Refetch(context.Background())
	assert.True(t, f.hooks.Presale(presale).State().Found)

	f.store.ClearCache()
	assert.False(t, f.hooks.Presale(presale).State().Found)
}

func TestLock_CachedAndFetched(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserLocks(wallet, []models.LockRecord{{ID: models.BigIntFromUint64(1), Owner: walletKey}})

	lock, ok, err := f.hooks.Lock(context.Background(), wallet, "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", lock.Key())

	f.reader.EXPECT().Lock(gomock.Any(), big.NewInt(9)).
		Return(models.LockRecord{ID: models.BigIntFromUint64(9), Owner: walletKey}, nil)
	lock, ok, err = f.hooks.Lock(context.Background(), wallet, "9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "9", lock.Key())

	_, cached := f.store.GetUserLock(wallet, "9")
	assert.True(t, cached)
}

func TestLock_NonCanonicalIDHitsCache(t *testing.T) {
	f := newFixture(t)
	f.store.SetUserLocks(wallet, []models.LockRecord{{ID: models.BigIntFromUint64(7), Owner: walletKey}})

	lock, ok, err := f.hooks.Lock(context.Background(), wallet, "007")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", lock.Key())
}

func TestLock_ForeignOwnerAndBadID(t *testing.T) {
	f := newFixture(t)
	f.reader.EXPECT().Lock(gomock.Any(), big.NewInt(5)).
		Return(models.LockRecord{ID: models.BigIntFromUint64(5), Owner: "0xsomeoneelse"}, nil)

	_, ok, err := f.hooks.Lock(context.Background(), wallet, "5")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = f.hooks.Lock(context.Background(), wallet, "five")
	assert.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	f := newFixture(t)
	other := "0x0000000000000000000000000000000000000001"
	f.store.SetUserTokens(wallet, tokens("AAA"))
	f.store.SetUserLocks(wallet, []models.LockRecord{
		{ID: models.BigIntFromUint64(1)}, {ID: models.BigIntFromUint64(2)},
	})
	f.store.SetUserTokens(other, tokens("BBB"))

	f.hooks.Invalidate(models.Invalidation{Kind: models.KindUserLocks, Address: wallet, LockID: "2"})
	locks, ok := f.store.GetUserLocks(wallet)
	require.True(t, ok)
	require.Len(t, locks, 1)
	assert.Equal(t, "1", locks[0].Key())

	f.hooks.Invalidate(models.Invalidation{Kind: models.KindUserTokens, Address: wallet})
	_, ok = f.store.GetUserTokens(wallet)
	assert.False(t, ok)
	_, ok = f.store.GetUserTokens(other)
	assert.True(t, ok)

	f.reader.EXPECT().Markets(gomock.Any()).Return([]models.Market{{Pair: "0x02"}}, nil)
	f.hooks.Invalidate(models.Invalidation{Kind: models.KindMarkets})
	assert.Eventually(t, func() bool {
		markets, ok := f.store.GetMarkets()
		return ok && len(markets) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestParticipation(t *testing.T) {
	f := newFixture(t)
	const sale = "0x4000000000000000000000000000000000000001"
	f.reader.EXPECT().IsWhitelisted(gomock.Any(), sale, walletKey).Return(true, nil)
	f.reader.EXPECT().Contribution(gomock.Any(), sale, walletKey).Return(big.NewInt(250), nil)

	p, err := f.hooks.Participation(context.Background(), sale, walletKey)
	require.NoError(t, err)
	assert.True(t, p.Whitelisted)
	assert.Equal(t, "250", p.Contribution.String())
}

func TestParticipation_Error(t *testing.T) {
	f := newFixture(t)
	const sale = "0x4000000000000000000000000000000000000001"
	f.reader.EXPECT().IsWhitelisted(gomock.Any(), sale, walletKey).Return(false, errors.New("rpc down"))
	f.reader.EXPECT().Contribution(gomock.Any(), sale, walletKey).Return(big.NewInt(0), nil).AnyTimes()

	_, err := f.hooks.Participation(context.Background(), sale, walletKey)
	assert.EqualError(t, err, "rpc down")
}
