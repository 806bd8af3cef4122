package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"go-reactpad-cache/internal/models"
)

//go:generate mockgen -package=mock -source=chain.go -destination=mock/chain.go

// ContractCaller executes read-only contract calls. *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ChainIDReader reports the chain the connected wallet provider is on
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// TxBackend submits transactions through the connected wallet and reads receipts
type TxBackend interface {
	// SendTransaction asks the wallet to sign and broadcast req
	SendTransaction(ctx context.Context, req models.TxRequest) (common.Hash, error)
	// TransactionReceipt returns ethereum.NotFound while the transaction is pending
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}
