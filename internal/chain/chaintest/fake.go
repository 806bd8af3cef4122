// Package chaintest provides an in-memory contract backend for tests.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"go-reactpad-cache/internal/chain"
)

// Handler answers one contract method. It receives the decoded arguments and
// returns the values to encode as outputs.
type Handler func(args []interface{}) ([]interface{}, error)

type handlerKey struct {
	to     common.Address
	method string
}

type call3 struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

type result3 struct {
	Success    bool
	ReturnData []byte
}

// ErrNoHandler is returned for calls nothing was registered for
var ErrNoHandler = errors.New("chaintest: no handler")

// Chain is a fake ContractCaller dispatching on target address and method
// name. Calls to the multicall address are unpacked and dispatched one by one.
type Chain struct {
	mu        sync.Mutex
	abis      *chain.ABIs
	multicall common.Address
	handlers  map[handlerKey]Handler
	calls     map[string]int
	failAll   error
}

// New creates an empty fake chain answering aggregate3 at multicall
func New(abis *chain.ABIs, multicall common.Address) *Chain {
	return &Chain{
		abis:      abis,
		multicall: multicall,
		handlers:  make(map[handlerKey]Handler),
		calls:     make(map[string]int),
	}
}

// Handle registers h for method on to
func (c *Chain) Handle(to common.Address, method string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[handlerKey{to: to, method: method}] = h
}

// Return registers a handler that always returns values
func (c *Chain) Return(to common.Address, method string, values ...interface{}) {
	c.Handle(to, method, func([]interface{}) ([]interface{}, error) {
		return values, nil
	})
}

// Fail makes every call return err until Fail(nil)
func (c *Chain) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAll = err
}

// Calls returns how many times method was invoked, counting multicall sub-calls
func (c *Chain) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// CallContract implements interfaces.ContractCaller
func (c *Chain) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	failAll := c.failAll
	c.mu.Unlock()
	if failAll != nil {
		return nil, failAll
	}
	if call.To == nil {
		return nil, errors.New("chaintest: missing target")
	}
	if *call.To == c.multicall {
		return c.aggregate3(call.Data)
	}
	return c.dispatch(*call.To, call.Data)
}

func (c *Chain) dispatch(to common.Address, data []byte) ([]byte, error) {
	method, ok := c.abis.MethodBySelector(data)
	if !ok {
		return nil, fmt.Errorf("chaintest: unknown selector %x", data[:min(4, len(data))])
	}

	c.mu.Lock()
	c.calls[method.RawName]++
	h, ok := c.handlers[handlerKey{to: to, method: method.RawName}]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s on %s", ErrNoHandler, method.RawName, strings.ToLower(to.Hex()))
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	out, err := h(args)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(out...)
}

func (c *Chain) aggregate3(data []byte) ([]byte, error) {
	method := c.abis.Multicall3.Methods["aggregate3"]
	c.mu.Lock()
	c.calls[method.RawName]++
	c.mu.Unlock()

	in, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	calls := *abi.ConvertType(in[0], new([]call3)).(*[]call3)

	results := make([]result3, len(calls))
	for i, sub := range calls {
		ret, err := c.dispatch(sub.Target, sub.CallData)
		if err != nil {
			if !sub.AllowFailure {
				return nil, fmt.Errorf("multicall3: call %d failed: %w", i, err)
			}
			continue
		}
		results[i] = result3{Success: true, ReturnData: ret}
	}
	return method.Outputs.Pack(results)
}
