package models

import "sort"

// TokenInfo is an ERC-20 token created by a wallet through the token factory
type TokenInfo struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply BigInt `json:"totalSupply"`
	Owner       string `json:"owner"`
}

// LockRecord is one token lock held by the locker contract
type LockRecord struct {
	ID          BigInt `json:"id"`
	Token       string `json:"token"`
	Owner       string `json:"owner"`
	Amount      BigInt `json:"amount"`
	LockDate    int64  `json:"lockDate"`
	UnlockDate  int64  `json:"unlockDate"`
	Withdrawn   bool   `json:"withdrawn"`
	Description string `json:"description,omitempty"`
}

// Key is the string form of the lock ID used for nesting under a user entry
func (l LockRecord) Key() string {
	return l.ID.String()
}

// Market is one AMM pair with its reserves
type Market struct {
	Pair     string `json:"pair"`
	Token0   string `json:"token0"`
	Token1   string `json:"token1"`
	Reserve0 BigInt `json:"reserve0"`
	Reserve1 BigInt `json:"reserve1"`
}

// SortLocks orders lock records by numeric ID
func SortLocks(locks []LockRecord) {
	sort.Slice(locks, func(i, j int) bool {
		return locks[i].ID.orZero().Cmp(locks[j].ID.orZero()) < 0
	})
}
