package reader

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/chain/chaintest"
	"go-reactpad-cache/internal/models"
)

const testRegistry = `
chains:
  - chain_id: 97
    name: BNB Testnet
    rpc_url: https://data-seed-prebsc-1-s1.binance.org:8545
    contracts:
      token_factory: "0x2000000000000000000000000000000000000001"
      presale_factory: "0x2000000000000000000000000000000000000002"
      token_locker: "0x2000000000000000000000000000000000000003"
      amm_factory: "0x2000000000000000000000000000000000000005"
      multicall: "0x2000000000000000000000000000000000000009"
  - chain_id: 1337
    name: Local
    rpc_url: http://127.0.0.1:8545
    contracts:
      token_factory: "0x3000000000000000000000000000000000000001"
      presale_factory: "0x3000000000000000000000000000000000000002"
      token_locker: "0x3000000000000000000000000000000000000003"
`

var (
	tokenFactory   = common.HexToAddress("0x2000000000000000000000000000000000000001")
	presaleFactory = common.HexToAddress("0x2000000000000000000000000000000000000002")
	tokenLocker    = common.HexToAddress("0x2000000000000000000000000000000000000003")
	ammFactory     = common.HexToAddress("0x2000000000000000000000000000000000000005")
	multicall      = common.HexToAddress("0x2000000000000000000000000000000000000009")

	wallet   = common.HexToAddress("0xAbCdEf0123456789AbCdEf0123456789AbCdEf01")
	tokenA   = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	tokenB   = common.HexToAddress("0x00000000000000000000000000000000000000B2")
	presaleP = common.HexToAddress("0x00000000000000000000000000000000000000C3")
)

func newTestReader(t *testing.T) (*Reader, *chaintest.Chain) {
	t.Helper()
	registry, err := chain.ParseRegistry([]byte(testRegistry))
	require.NoError(t, err)
	abis := chain.MustABIs()
	fake := chaintest.New(abis, multicall)
	return New(fake, registry, abis, 97, zaptest.NewLogger(t)), fake
}

func hugeInt() *big.Int {
	v, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	return v
}

func TestUserTokens(t *testing.T) {
	r, fake := newTestReader(t)

	fake.Return(tokenFactory, "getTokensByOwner", []common.Address{tokenA, tokenB})
	fake.Return(tokenA, "name", "Alpha")
	fake.Return(tokenA, "symbol", "ALP")
	fake.Return(tokenA, "decimals", uint8(18))
	fake.Return(tokenA, "totalSupply", hugeInt())
	fake.Return(tokenB, "name", "Beta")
	fake.Return(tokenB, "decimals", uint8(6))
	fake.Return(tokenB, "totalSupply", big.NewInt(1000))

	tokens, err := r.UserTokens(context.Background(), wallet.Hex())
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, "0x00000000000000000000000000000000000000a1", tokens[0].Address)
	assert.Equal(t, "Alpha", tokens[0].Name)
	assert.Equal(t, "ALP", tokens[0].Symbol)
	assert.Equal(t, uint8(18), tokens[0].Decimals)
	assert.Equal(t, 0, tokens[0].TotalSupply.Cmp(hugeInt()))
	assert.Equal(t, models.NormalizeAddress(wallet.Hex()), tokens[0].Owner)

	// a failing sub-call leaves the field empty instead of failing the batch
	assert.Equal(t, "Beta", tokens[1].Name)
	assert.Equal(t, "", tokens[1].Symbol)
	assert.Equal(t, uint8(6), tokens[1].Decimals)

	assert.Equal(t, 1, fake.Calls("aggregate3"))
}

func TestUserTokens_Empty(t *testing.T) {
	r, fake := newTestReader(t)
	fake.Return(tokenFactory, "getTokensByOwner", []common.Address{})

	tokens, err := r.UserTokens(context.Background(), wallet.Hex())
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Equal(t, 0, fake.Calls("aggregate3"))
}

func TestUserTokens_InvalidAddress(t *testing.T) {
	r, fake := newTestReader(t)

	_, err := r.UserTokens(context.Background(), "0xnothex")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, models.KindUserTokens, fetchErr.Resource)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Equal(t, 0, fake.Calls("getTokensByOwner"))
}

func TestUserTokens_UpstreamFailure(t *testing.T) {
	r, fake := newTestReader(t)
	rpcErr := errors.New("connection refused")
	fake.Fail(rpcErr)

	_, err := r.UserTokens(context.Background(), wallet.Hex())
	assert.ErrorIs(t, err, rpcErr)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, models.NormalizeAddress(wallet.Hex()), fetchErr.Key)
	assert.Contains(t, err.Error(), "user_tokens")
}

func TestReader_UnknownChainAndNotDeployed(t *testing.T) {
	r, _ := newTestReader(t)

	r.SetChainID(56)
	_, err := r.Markets(context.Background())
	assert.ErrorIs(t, err, chain.ErrUnknownChain)

	r.SetChainID(1337)
	assert.Equal(t, uint64(1337), r.ChainID())
	_, err = r.Markets(context.Background())
	assert.ErrorIs(t, err, ErrNotDeployed)
}

func lockHandler(owner common.Address) chaintest.Handler {
	return func(args []interface{}) ([]interface{}, error) {
		id := args[0].(*big.Int)
		return []interface{}{
			id, tokenA, owner, big.NewInt(500), big.NewInt(1_700_000_000), big.NewInt(1_800_000_000),
			false, "team tokens " + id.String(),
		}, nil
	}
}

func TestUserLocks(t *testing.T) {
	r, fake := newTestReader(t)

	bigID := new(big.Int).Lsh(big.NewInt(1), 60)
	fake.Return(tokenLocker, "getUserLocks", []*big.Int{big.NewInt(3), bigID, big.NewInt(1)})
	fake.Handle(tokenLocker, "getLock", lockHandler(wallet))

	locks, err := r.UserLocks(context.Background(), wallet.Hex())
	require.NoError(t, err)
	require.Len(t, locks, 3)

	assert.Equal(t, "1", locks[0].Key())
	assert.Equal(t, "3", locks[1].Key())
	assert.Equal(t, bigID.String(), locks[2].Key())
	assert.Equal(t, int64(1_800_000_000), locks[0].UnlockDate)
	assert.Equal(t, "team tokens 3", locks[1].Description)
	assert.Equal(t, models.NormalizeAddress(wallet.Hex()), locks[0].Owner)
}

func TestLock(t *testing.T) {
	r, fake := newTestReader(t)
	fake.Handle(tokenLocker, "getLock", lockHandler(wallet))

	lock, err := r.Lock(context.Background(), big.NewInt(42))
	require.NoError(t, err)
	assert.Equal(t, "42", lock.Key())
	assert.True(t, lock.Amount.Equal(models.BigIntFromUint64(500)))
}

func TestMarkets(t *testing.T) {
	r, fake := newTestReader(t)

	pair0 := common.HexToAddress("0x00000000000000000000000000000000000000D0")
	pair1 := common.HexToAddress("0x00000000000000000000000000000000000000D1")
	fake.Return(ammFactory, "allPairsLength", big.NewInt(2))
	fake.Handle(ammFactory, "allPairs", func(args []interface{}) ([]interface{}, error) {
		if args[0].(*big.Int).Int64() == 0 {
			return []interface{}{pair0}, nil
		}
		return []interface{}{pair1}, nil
	})
	for _, p := range []common.Address{pair0, pair1} {
		fake.Return(p, "token0", tokenA)
		fake.Return(p, "token1", tokenB)
	}
	fake.Return(pair0, "getReserves", big.NewInt(10), hugeInt(), uint32(1))
	// pair1 reserves unreadable: skipped

	markets, err := r.Markets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, models.NormalizeAddress(pair0.Hex()), markets[0].Pair)
	assert.Equal(t, models.NormalizeAddress(tokenB.Hex()), markets[0].Token1)
	assert.Equal(t, 0, markets[0].Reserve1.Cmp(hugeInt()))
}

func TestMarkets_Truncated(t *testing.T) {
	r, fake := newTestReader(t)
	r.SetMaxMarkets(1)

	pair0 := common.HexToAddress("0x00000000000000000000000000000000000000D0")
	fake.Return(ammFactory, "allPairsLength", big.NewInt(5000))
	fake.Return(ammFactory, "allPairs", pair0)
	fake.Return(pair0, "token0", tokenA)
	fake.Return(pair0, "token1", tokenB)
	fake.Return(pair0, "getReserves", big.NewInt(1), big.NewInt(2), uint32(1))

	markets, err := r.Markets(context.Background())
	require.NoError(t, err)
	assert.Len(t, markets, 1)
	assert.Equal(t, 1, fake.Calls("allPairs"))
}

func TestPresaleAddresses(t *testing.T) {
	r, fake := newTestReader(t)
	fake.Return(presaleFactory, "getAllPresales", []common.Address{presaleP})

	addresses, err := r.PresaleAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{models.NormalizeAddress(presaleP.Hex())}, addresses)
}

func presaleInfoValues(start, end int64) []interface{} {
	return []interface{}{
		wallet, tokenA, common.Address{},
		big.NewInt(1000), big.NewInt(50), hugeInt(), big.NewInt(1), big.NewInt(100),
		big.NewInt(start), big.NewInt(end), big.NewInt(75), true,
	}
}

func TestPresale(t *testing.T) {
	r, fake := newTestReader(t)
	fake.Return(presaleP, "getPresaleInfo", presaleInfoValues(1000, 2000)...)
	fake.Return(presaleP, "claimEnabled", true)
	fake.Return(presaleP, "refundsEnabled", false)

	info, err := r.Presale(context.Background(), presaleP.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NormalizeAddress(presaleP.Hex()), info.Address)
	assert.Equal(t, models.NormalizeAddress(wallet.Hex()), info.Owner)
	assert.Equal(t, int64(1000), info.StartTime)
	assert.Equal(t, int64(2000), info.EndTime)
	assert.Equal(t, 0, info.HardCap.Cmp(hugeInt()))
	assert.True(t, info.WhitelistEnabled)
	assert.True(t, info.ClaimEnabled)
	assert.False(t, info.RefundsEnabled)
}

func TestPresale_MissingInfoFails(t *testing.T) {
	r, _ := newTestReader(t)

	_, err := r.Presale(context.Background(), presaleP.Hex())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, models.KindPresale, fetchErr.Resource)
}

func TestIsWhitelistedAndContribution(t *testing.T) {
	r, fake := newTestReader(t)
	fake.Handle(presaleP, "isWhitelisted", func(args []interface{}) ([]interface{}, error) {
		return []interface{}{args[0].(common.Address) == wallet}, nil
	})
	fake.Return(presaleP, "contributions", big.NewInt(7))

	ok, err := r.IsWhitelisted(context.Background(), presaleP.Hex(), wallet.Hex())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsWhitelisted(context.Background(), presaleP.Hex(), tokenB.Hex())
	require.NoError(t, err)
	assert.False(t, ok)

	amount, err := r.Contribution(context.Background(), presaleP.Hex(), wallet.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(7), amount.Int64())

	_, err = r.IsWhitelisted(context.Background(), presaleP.Hex(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTimestampsBeyondInt64AreClamped(t *testing.T) {
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	info := presaleInfoOutput{
		StartTime: big.NewInt(1709294400),
		EndTime:   maxUint256,
	}.info(common.HexToAddress("0x3000000000000000000000000000000000000001"))
	assert.Equal(t, int64(1709294400), info.StartTime)
	assert.Equal(t, int64(math.MaxInt64), info.EndTime)

	lock := lockOutput{
		ID:         big.NewInt(1),
		LockDate:   big.NewInt(1709294400),
		UnlockDate: new(big.Int).Lsh(big.NewInt(1), 64),
	}.record()
	assert.Equal(t, int64(1709294400), lock.LockDate)
	assert.Equal(t, int64(math.MaxInt64), lock.UnlockDate)
}
