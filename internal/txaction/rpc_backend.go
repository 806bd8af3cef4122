package txaction

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// RPCBackend submits transactions to a node or wallet provider that holds
// the signing key, using eth_sendTransaction.
type RPCBackend struct {
	rpc    *rpc.Client
	client *ethclient.Client
}

var _ interfaces.TxBackend = (*RPCBackend)(nil)

// NewRPCBackend wraps an open RPC client
func NewRPCBackend(client *rpc.Client) *RPCBackend {
	return &RPCBackend{rpc: client, client: ethclient.NewClient(client)}
}

type sendTxArgs struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *hexutil.Big   `json:"value,omitempty"`
}

// SendTransaction asks the provider to sign and broadcast req
func (b *RPCBackend) SendTransaction(ctx context.Context, req models.TxRequest) (common.Hash, error) {
	args := sendTxArgs{From: req.From, To: req.To, Data: req.Data}
	if req.Value != nil && req.Value.Sign() > 0 {
		args.Value = (*hexutil.Big)(req.Value)
	}
	var hash common.Hash
	if err := b.rpc.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return common.Hash{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}
	return hash, nil
}

// TransactionReceipt returns ethereum.NotFound while the transaction is pending
func (b *RPCBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return b.client.TransactionReceipt(ctx, txHash)
}
