package reader

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"go-reactpad-cache/internal/models"
)

// presaleInfoOutput mirrors the getPresaleInfo outputs
type presaleInfoOutput struct {
	Owner            common.Address
	SaleToken        common.Address
	PaymentToken     common.Address
	Rate             *big.Int
	SoftCap          *big.Int
	HardCap          *big.Int
	MinContribution  *big.Int
	MaxContribution  *big.Int
	StartTime        *big.Int
	EndTime          *big.Int
	TotalRaised      *big.Int
	WhitelistEnabled bool
}

func (o presaleInfoOutput) info(presale common.Address) models.PresaleInfo {
	return models.PresaleInfo{
		Address:          lowerHex(presale),
		Owner:            lowerHex(o.Owner),
		SaleToken:        lowerHex(o.SaleToken),
		PaymentToken:     lowerHex(o.PaymentToken),
		Rate:             models.NewBigInt(o.Rate),
		SoftCap:          models.NewBigInt(o.SoftCap),
		HardCap:          models.NewBigInt(o.HardCap),
		MinContribution:  models.NewBigInt(o.MinContribution),
		MaxContribution:  models.NewBigInt(o.MaxContribution),
		StartTime:        unixSeconds(o.StartTime),
		EndTime:          unixSeconds(o.EndTime),
		TotalRaised:      models.NewBigInt(o.TotalRaised),
		WhitelistEnabled: o.WhitelistEnabled,
	}
}

// PresaleAddresses lists every presale deployed by the presale factory
func (r *Reader) PresaleAddresses(ctx context.Context) ([]string, error) {
	addresses, err := r.presaleAddresses(ctx)
	return addresses, fetchError(models.KindPresaleAddresses, "", err)
}

func (r *Reader) presaleAddresses(ctx context.Context) ([]string, error) {
	c, err := r.contracts()
	if err != nil {
		return nil, err
	}
	if c.PresaleFactory == (common.Address{}) {
		return nil, ErrNotDeployed
	}

	out, err := r.call(ctx, &r.abis.PresaleFactory, c.PresaleFactory, "getAllPresales")
	if err != nil {
		return nil, err
	}
	presales := out[0].([]common.Address)
	addresses := make([]string, len(presales))
	for i, p := range presales {
		addresses[i] = lowerHex(p)
	}
	return addresses, nil
}

// Presale reads one presale's on-chain state
func (r *Reader) Presale(ctx context.Context, address string) (models.PresaleInfo, error) {
	key := models.NormalizeAddress(address)
	info, err := r.presale(ctx, address)
	return info, fetchError(models.KindPresale, key, err)
}

func (r *Reader) presale(ctx context.Context, address string) (models.PresaleInfo, error) {
	presaleAddr, err := parseAddress(address)
	if err != nil {
		return models.PresaleInfo{}, err
	}
	c, err := r.contracts()
	if err != nil {
		return models.PresaleInfo{}, err
	}

	results, err := r.multicall(ctx, c, []call3{
		packCall(&r.abis.Presale, presaleAddr, false, "getPresaleInfo"),
		packCall(&r.abis.Presale, presaleAddr, true, "claimEnabled"),
		packCall(&r.abis.Presale, presaleAddr, true, "refundsEnabled"),
	})
	if err != nil {
		return models.PresaleInfo{}, err
	}

	var o presaleInfoOutput
	if err := r.abis.Presale.UnpackIntoInterface(&o, "getPresaleInfo", results[0].ReturnData); err != nil {
		return models.PresaleInfo{}, fmt.Errorf("unpack getPresaleInfo: %w", err)
	}

	info := o.info(presaleAddr)
	if v, ok := unpackResult(&r.abis.Presale, "claimEnabled", results[1]); ok {
		info.ClaimEnabled = v[0].(bool)
	}
	if v, ok := unpackResult(&r.abis.Presale, "refundsEnabled", results[2]); ok {
		info.RefundsEnabled = v[0].(bool)
	}
	return info, nil
}

// IsWhitelisted reports whether account may contribute. The answer is
// advisory; the presale contract enforces it.
func (r *Reader) IsWhitelisted(ctx context.Context, presale, account string) (bool, error) {
	key := models.NormalizeAddress(presale)
	ok, err := r.isWhitelisted(ctx, presale, account)
	return ok, fetchError(models.KindPresale, key, err)
}

func (r *Reader) isWhitelisted(ctx context.Context, presale, account string) (bool, error) {
	presaleAddr, err := parseAddress(presale)
	if err != nil {
		return false, err
	}
	accountAddr, err := parseAddress(account)
	if err != nil {
		return false, err
	}
	out, err := r.call(ctx, &r.abis.Presale, presaleAddr, "isWhitelisted", accountAddr)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// Contribution returns how much account has contributed to presale
func (r *Reader) Contribution(ctx context.Context, presale, account string) (*big.Int, error) {
	key := models.NormalizeAddress(presale)
	amount, err := r.contribution(ctx, presale, account)
	return amount, fetchError(models.KindPresale, key, err)
}

func (r *Reader) contribution(ctx context.Context, presale, account string) (*big.Int, error) {
	presaleAddr, err := parseAddress(presale)
	if err != nil {
		return nil, err
	}
	accountAddr, err := parseAddress(account)
	if err != nil {
		return nil, err
	}
	out, err := r.call(ctx, &r.abis.Presale, presaleAddr, "contributions", accountAddr)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}
