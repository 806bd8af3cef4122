package reader

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/models"
)

// Markets enumerates AMM pairs with their tokens and reserves
func (r *Reader) Markets(ctx context.Context) ([]models.Market, error) {
	markets, err := r.markets(ctx)
	return markets, fetchError(models.KindMarkets, "", err)
}

func (r *Reader) markets(ctx context.Context) ([]models.Market, error) {
	c, err := r.contracts()
	if err != nil {
		return nil, err
	}
	if c.AMMFactory == (common.Address{}) {
		return nil, ErrNotDeployed
	}

	out, err := r.call(ctx, &r.abis.AMMFactory, c.AMMFactory, "allPairsLength")
	if err != nil {
		return nil, err
	}
	total := out[0].(*big.Int)
	n := r.maxMarkets
	if total.IsInt64() && total.Int64() < int64(n) {
		n = int(total.Int64())
	} else if total.Cmp(big.NewInt(int64(n))) > 0 {
		r.logger.Info("Truncating market list", zap.String("pairs", total.String()), zap.Int("max", n))
	}
	if n == 0 {
		return []models.Market{}, nil
	}

	calls := make([]call3, n)
	for i := 0; i < n; i++ {
		calls[i] = packCall(&r.abis.AMMFactory, c.AMMFactory, false, "allPairs", big.NewInt(int64(i)))
	}
	results, err := r.multicall(ctx, c, calls)
	if err != nil {
		return nil, err
	}

	pairs := make([]common.Address, 0, n)
	for i, res := range results {
		v, ok := unpackResult(&r.abis.AMMFactory, "allPairs", res)
		if !ok {
			return nil, fmt.Errorf("unpack pair %d", i)
		}
		pairs = append(pairs, v[0].(common.Address))
	}

	calls = make([]call3, 0, len(pairs)*3)
	for _, pair := range pairs {
		calls = append(calls,
			packCall(&r.abis.AMMPair, pair, true, "token0"),
			packCall(&r.abis.AMMPair, pair, true, "token1"),
			packCall(&r.abis.AMMPair, pair, true, "getReserves"),
		)
	}
	results, err = r.multicall(ctx, c, calls)
	if err != nil {
		return nil, err
	}

	markets := make([]models.Market, 0, len(pairs))
	for i, pair := range pairs {
		base := i * 3
		token0, ok0 := unpackResult(&r.abis.AMMPair, "token0", results[base])
		token1, ok1 := unpackResult(&r.abis.AMMPair, "token1", results[base+1])
		reserves, ok2 := unpackResult(&r.abis.AMMPair, "getReserves", results[base+2])
		if !ok0 || !ok1 || !ok2 {
			r.logger.Warn("Skipping unreadable pair", zap.String("pair", lowerHex(pair)))
			continue
		}
		markets = append(markets, models.Market{
			Pair:     lowerHex(pair),
			Token0:   lowerHex(token0[0].(common.Address)),
			Token1:   lowerHex(token1[0].(common.Address)),
			Reserve0: models.NewBigInt(reserves[0].(*big.Int)),
			Reserve1: models.NewBigInt(reserves[1].(*big.Int)),
		})
	}
	return markets, nil
}
