package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/models"
)

var tokenFields = []string{"name", "symbol", "decimals", "totalSupply"}

// UserTokens lists the tokens owner created through the token factory
func (r *Reader) UserTokens(ctx context.Context, owner string) ([]models.TokenInfo, error) {
	key := models.NormalizeAddress(owner)
	tokens, err := r.userTokens(ctx, owner)
	return tokens, fetchError(models.KindUserTokens, key, err)
}

func (r *Reader) userTokens(ctx context.Context, owner string) ([]models.TokenInfo, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	c, err := r.contracts()
	if err != nil {
		return nil, err
	}
	if c.TokenFactory == (common.Address{}) {
		return nil, ErrNotDeployed
	}

	out, err := r.call(ctx, &r.abis.TokenFactory, c.TokenFactory, "getTokensByOwner", ownerAddr)
	if err != nil {
		return nil, err
	}
	addresses := out[0].([]common.Address)
	if len(addresses) == 0 {
		return []models.TokenInfo{}, nil
	}

	calls := make([]call3, 0, len(addresses)*len(tokenFields))
	for _, token := range addresses {
		for _, field := range tokenFields {
			calls = append(calls, packCall(&r.abis.ERC20, token, true, field))
		}
	}
	results, err := r.multicall(ctx, c, calls)
	if err != nil {
		return nil, err
	}

	tokens := make([]models.TokenInfo, 0, len(addresses))
	for i, token := range addresses {
		info := models.TokenInfo{
			Address: lowerHex(token),
			Owner:   lowerHex(ownerAddr),
		}
		base := i * len(tokenFields)
		if v, ok := unpackResult(&r.abis.ERC20, "name", results[base]); ok {
			info.Name = v[0].(string)
		}
		if v, ok := unpackResult(&r.abis.ERC20, "symbol", results[base+1]); ok {
			info.Symbol = v[0].(string)
		}
		if v, ok := unpackResult(&r.abis.ERC20, "decimals", results[base+2]); ok {
			info.Decimals = v[0].(uint8)
		}
		if v, ok := unpackResult(&r.abis.ERC20, "totalSupply", results[base+3]); ok {
			info.TotalSupply = models.NewBigInt(v[0].(*big.Int))
		}
		if info.Symbol == "" {
			r.logger.Debug("Token metadata incomplete", zap.String("token", info.Address))
		}
		tokens = append(tokens, info)
	}
	return tokens, nil
}
