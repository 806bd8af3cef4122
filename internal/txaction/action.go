package txaction

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
)

const (
	DefaultPollInterval   = 2 * time.Second
	DefaultReceiptTimeout = 5 * time.Minute
	DefaultRetention      = 10 * time.Minute
)

// Observer is called with every status change of an action
type Observer func(Status)

// Options tune receipt polling. Zero values fall back to the defaults.
type Options struct {
	Clock          clock.Clock
	PollInterval   time.Duration
	ReceiptTimeout time.Duration
	// Retention is how long a Manager keeps a settled action's status
	Retention time.Duration
}

// Action drives one write call through its phases. It can be run again once
// settled; a second Run while one is in flight fails with ErrAlreadyRunning.
type Action struct {
	name         string
	backend      interfaces.TxBackend
	invalidator  interfaces.Invalidator
	abis         *chain.ABIs
	clock        clock.Clock
	pollInterval time.Duration
	timeout      time.Duration
	logger       *zap.Logger

	mu        sync.Mutex
	status    Status
	observers []Observer
}

// NewAction creates an idle action. invalidator may be nil.
func NewAction(name string, backend interfaces.TxBackend, invalidator interfaces.Invalidator, abis *chain.ABIs, opts Options, logger *zap.Logger) *Action {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ReceiptTimeout <= 0 {
		opts.ReceiptTimeout = DefaultReceiptTimeout
	}
	return &Action{
		name:         name,
		backend:      backend,
		invalidator:  invalidator,
		abis:         abis,
		clock:        opts.Clock,
		pollInterval: opts.PollInterval,
		timeout:      opts.ReceiptTimeout,
		logger:       logger.With(zap.String("action", name)),
		status:       Status{Action: name, Phase: PhaseNotStarted},
	}
}

// Status returns a snapshot of the current status
func (a *Action) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Observe registers fn for every subsequent status change
func (a *Action) Observe(fn Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// Reset returns a settled action to not_started
func (a *Action) Reset() {
	a.mu.Lock()
	if !a.status.Phase.IsSettled() {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	a.update(Status{Action: a.name, Phase: PhaseNotStarted})
}

func (a *Action) update(s Status) {
	a.mu.Lock()
	a.status = s
	observers := append([]Observer(nil), a.observers...)
	a.mu.Unlock()

	metrics.RecordTxPhase(a.name, string(s.Phase))
	for _, fn := range observers {
		fn(s)
	}
}

func (a *Action) begin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status.Phase == PhasePending || a.status.Phase == PhaseConfirming {
		return false
	}
	a.status.Phase = PhasePending
	return true
}

// Run validates req, submits it and waits for the receipt. Invalid input
// fails before anything is sent. On success the request's invalidations
// are applied. Failures are not retried.
func (a *Action) Run(ctx context.Context, req Request) (Status, error) {
	if !a.begin() {
		return a.Status(), ErrAlreadyRunning
	}
	if err := req.Validate(); err != nil {
		return a.fail(Status{Action: a.name}, err), err
	}
	a.update(Status{Action: a.name, Phase: PhasePending})

	hash, err := a.backend.SendTransaction(ctx, req.Tx)
	if err != nil {
		return a.fail(Status{Action: a.name}, err), err
	}
	a.logger.Info("Transaction submitted", zap.String("tx_hash", hash.Hex()))
	a.update(Status{Action: a.name, Phase: PhaseConfirming, TxHash: hash})

	receipt, err := a.waitReceipt(ctx, hash)
	if err != nil {
		return a.fail(Status{Action: a.name, TxHash: hash}, err), err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		s := Status{Action: a.name, TxHash: hash}
		if receipt.BlockNumber != nil {
			s.BlockNumber = receipt.BlockNumber.Uint64()
		}
		return a.fail(s, ErrReverted), ErrReverted
	}

	s := Status{Action: a.name, Phase: PhaseSuccess, TxHash: hash}
	if receipt.BlockNumber != nil {
		s.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if a.invalidator != nil {
		for _, inv := range req.Invalidates {
			a.invalidator.Invalidate(inv)
		}
	}
	a.logger.Info("Transaction confirmed",
		zap.String("tx_hash", hash.Hex()),
		zap.Uint64("block", s.BlockNumber))
	a.update(s)
	return s, nil
}

func (a *Action) fail(s Status, err error) Status {
	s.Phase = PhaseError
	s.Err = err
	s.Message = TranslateError(err, a.abis)
	a.logger.Warn("Transaction action failed", zap.Error(err), zap.String("message", s.Message))
	a.update(s)
	return s
}

// waitReceipt polls until the transaction is mined or the receipt timeout passes
func (a *Action) waitReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := a.clock.WithTimeout(ctx, a.timeout)
	defer cancel()

	ticker := a.clock.Ticker(a.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := a.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
