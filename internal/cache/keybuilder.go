package cache

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/crypto"

	"go-reactpad-cache/internal/interfaces"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for a contract call: chainID:to:keccak(calldata):block
func (kb *KeyBuilderImpl) Build(chainID uint64, call ethereum.CallMsg, blockNumber *big.Int) (string, error) {
	if chainID == 0 {
		return "", errors.New("chain id cannot be zero")
	}

	if call.To == nil {
		return "", errors.New("call target cannot be empty")
	}

	if len(call.Data) < 4 {
		return "", errors.New("calldata must contain a method selector")
	}

	block := "latest"
	if blockNumber != nil {
		block = blockNumber.String()
	}

	to := strings.ToLower(call.To.Hex())
	return fmt.Sprintf("%d:%s:%s:%s", chainID, to, crypto.Keccak256Hash(call.Data).Hex(), block), nil
}
