// Package reader fetches launchpad resources from chain contracts and shapes
// them into the models held by the cache store.
package reader

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/models"
)

// DefaultMaxMarkets bounds how many AMM pairs a market read enumerates
const DefaultMaxMarkets = 200

// call3 is one Multicall3 sub-call
type call3 struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

// result3 is one Multicall3 sub-result
type result3 struct {
	Success    bool
	ReturnData []byte
}

var _ interfaces.ChainReader = (*Reader)(nil)

// Reader runs the contract reads for the active chain
type Reader struct {
	caller     interfaces.ContractCaller
	registry   *chain.Registry
	abis       *chain.ABIs
	chainID    atomic.Uint64
	maxMarkets int
	logger     *zap.Logger
}

// New creates a Reader for chainID. caller is usually the caching CacheService.
func New(caller interfaces.ContractCaller, registry *chain.Registry, abis *chain.ABIs, chainID uint64, logger *zap.Logger) *Reader {
	r := &Reader{
		caller:     caller,
		registry:   registry,
		abis:       abis,
		maxMarkets: DefaultMaxMarkets,
		logger:     logger,
	}
	r.chainID.Store(chainID)
	return r
}

// SetChainID points subsequent reads at another chain's contracts
func (r *Reader) SetChainID(chainID uint64) {
	r.chainID.Store(chainID)
}

// ChainID returns the chain reads go to
func (r *Reader) ChainID() uint64 {
	return r.chainID.Load()
}

// SetMaxMarkets changes the market enumeration bound
func (r *Reader) SetMaxMarkets(n int) {
	if n > 0 {
		r.maxMarkets = n
	}
}

func (r *Reader) contracts() (chain.Contracts, error) {
	return r.registry.Contracts(r.chainID.Load())
}

func (r *Reader) multicallAddress(c chain.Contracts) common.Address {
	if c.Multicall == (common.Address{}) {
		return chain.DefaultMulticall3
	}
	return c.Multicall
}

// call packs method, runs it against to and unpacks the outputs
func (r *Reader) call(ctx context.Context, contract *abi.ABI, to common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	raw, err := r.rawCall(ctx, to, data)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	out, err := contract.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return out, nil
}

func (r *Reader) rawCall(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

// multicall batches calls through Multicall3.aggregate3
func (r *Reader) multicall(ctx context.Context, c chain.Contracts, calls []call3) ([]result3, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	out, err := r.call(ctx, &r.abis.Multicall3, r.multicallAddress(c), "aggregate3", calls)
	if err != nil {
		return nil, err
	}

	results := *abi.ConvertType(out[0], new([]result3)).(*[]result3)
	if len(results) != len(calls) {
		return nil, fmt.Errorf("multicall returned %d results for %d calls", len(results), len(calls))
	}
	return results, nil
}

// packCall builds a sub-call, panicking on pack errors since arguments come
// from typed values already decoded from the chain
func packCall(contract *abi.ABI, target common.Address, allowFailure bool, method string, args ...interface{}) call3 {
	data, err := contract.Pack(method, args...)
	if err != nil {
		panic(fmt.Sprintf("pack %s: %v", method, err))
	}
	return call3{Target: target, AllowFailure: allowFailure, CallData: data}
}

// unpackResult decodes a sub-result; failed sub-calls yield ok=false
func unpackResult(contract *abi.ABI, method string, res result3) ([]interface{}, bool) {
	if !res.Success || len(res.ReturnData) == 0 {
		return nil, false
	}
	out, err := contract.Unpack(method, res.ReturnData)
	if err != nil || len(out) == 0 {
		return nil, false
	}
	return out, true
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

func lowerHex(a common.Address) string {
	return models.NormalizeAddress(a.Hex())
}

// unixSeconds narrows a uint256 timestamp. Sentinels such as
// type(uint256).max mean "never" and clamp to the largest int64.
func unixSeconds(v *big.Int) int64 {
	switch {
	case v == nil || v.Sign() < 0:
		return 0
	case !v.IsInt64():
		return math.MaxInt64
	}
	return v.Int64()
}
