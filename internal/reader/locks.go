package reader

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/models"
)

// lockOutput mirrors the getLock outputs
type lockOutput struct {
	ID          *big.Int `abi:"id"`
	Token       common.Address
	Owner       common.Address
	Amount      *big.Int
	LockDate    *big.Int
	UnlockDate  *big.Int
	Withdrawn   bool
	Description string
}

func (o lockOutput) record() models.LockRecord {
	return models.LockRecord{
		ID:          models.NewBigInt(o.ID),
		Token:       lowerHex(o.Token),
		Owner:       lowerHex(o.Owner),
		Amount:      models.NewBigInt(o.Amount),
		LockDate:    unixSeconds(o.LockDate),
		UnlockDate:  unixSeconds(o.UnlockDate),
		Withdrawn:   o.Withdrawn,
		Description: o.Description,
	}
}

// UserLocks lists every lock held for owner, ordered by lock ID
func (r *Reader) UserLocks(ctx context.Context, owner string) ([]models.LockRecord, error) {
	key := models.NormalizeAddress(owner)
	locks, err := r.userLocks(ctx, owner)
	return locks, fetchError(models.KindUserLocks, key, err)
}

func (r *Reader) userLocks(ctx context.Context, owner string) ([]models.LockRecord, error) {
	ownerAddr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}
	c, err := r.lockerContracts()
	if err != nil {
		return nil, err
	}

	out, err := r.call(ctx, &r.abis.TokenLocker, c.TokenLocker, "getUserLocks", ownerAddr)
	if err != nil {
		return nil, err
	}
	ids := out[0].([]*big.Int)
	if len(ids) == 0 {
		return []models.LockRecord{}, nil
	}

	calls := make([]call3, len(ids))
	for i, id := range ids {
		calls[i] = packCall(&r.abis.TokenLocker, c.TokenLocker, false, "getLock", id)
	}
	results, err := r.multicall(ctx, c, calls)
	if err != nil {
		return nil, err
	}

	locks := make([]models.LockRecord, 0, len(ids))
	for i, res := range results {
		var o lockOutput
		if err := r.abis.TokenLocker.UnpackIntoInterface(&o, "getLock", res.ReturnData); err != nil {
			return nil, fmt.Errorf("unpack lock %s: %w", ids[i], err)
		}
		locks = append(locks, o.record())
	}
	models.SortLocks(locks)
	return locks, nil
}

// Lock reads one lock by ID
func (r *Reader) Lock(ctx context.Context, id *big.Int) (models.LockRecord, error) {
	lock, err := r.lock(ctx, id)
	return lock, fetchError(models.KindUserLocks, id.String(), err)
}

func (r *Reader) lock(ctx context.Context, id *big.Int) (models.LockRecord, error) {
	c, err := r.lockerContracts()
	if err != nil {
		return models.LockRecord{}, err
	}
	data, err := r.abis.TokenLocker.Pack("getLock", id)
	if err != nil {
		return models.LockRecord{}, err
	}
	raw, err := r.rawCall(ctx, c.TokenLocker, data)
	if err != nil {
		return models.LockRecord{}, fmt.Errorf("call getLock: %w", err)
	}
	var o lockOutput
	if err := r.abis.TokenLocker.UnpackIntoInterface(&o, "getLock", raw); err != nil {
		return models.LockRecord{}, fmt.Errorf("unpack getLock: %w", err)
	}
	return o.record(), nil
}

func (r *Reader) lockerContracts() (chain.Contracts, error) {
	c, err := r.contracts()
	if err != nil {
		return c, err
	}
	if c.TokenLocker == (common.Address{}) {
		return c, ErrNotDeployed
	}
	return c, nil
}
