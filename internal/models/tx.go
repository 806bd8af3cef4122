package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TxRequest is an unsigned transaction handed to the wallet for signing
type TxRequest struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// Invalidation names cached state a confirmed transaction made outdated.
// LockID narrows a user lock invalidation to one record.
type Invalidation struct {
	Kind    ResourceKind
	Address string
	LockID  string
}
