package interfaces

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
)

//go:generate mockgen -package=mock -source=key_builder.go -destination=mock/key_builder.go

// KeyBuilder derives call cache keys from contract calls
type KeyBuilder interface {
	Build(chainID uint64, call ethereum.CallMsg, blockNumber *big.Int) (string, error)
}
