// Package session tracks the wallet session: the connected account and the
// chain the provider is on. A chain switch clears every cached resource.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/scheduler"
	"go-reactpad-cache/internal/store"
)

// ChainBound is a component whose contract addresses depend on the active chain
type ChainBound interface {
	SetChainID(chainID uint64)
}

// Listener is notified after a chain switch has been applied
type Listener func(previous, current uint64)

// Watcher polls the provider's chain ID and applies switches
type Watcher struct {
	provider interfaces.ChainIDReader
	store    *store.Store
	bound    []ChainBound
	timeout  time.Duration
	logger   *zap.Logger

	scheduler *scheduler.Scheduler

	mu        sync.Mutex
	chainID   uint64
	account   string
	listeners []Listener

	pollMu     sync.Mutex
	pollSeq    uint64
	cancelPoll context.CancelFunc
}

// NewWatcher creates a Watcher that starts out on chainID. timeout bounds a
// single chain ID request.
func NewWatcher(provider interfaces.ChainIDReader, st *store.Store, chainID uint64, interval, timeout time.Duration, clk clock.Clock, logger *zap.Logger, bound ...ChainBound) *Watcher {
	w := &Watcher{
		provider: provider,
		store:    st,
		bound:    bound,
		timeout:  timeout,
		logger:   logger,
		chainID:  chainID,
	}
	w.scheduler = scheduler.NewWithClock(clk, interval, func() { w.Poll(context.Background()) })
	return w
}

// Start begins polling on the configured interval
func (w *Watcher) Start() {
	w.scheduler.Start()
}

// Stop ends polling and cancels a request in flight
func (w *Watcher) Stop() {
	w.pollMu.Lock()
	if w.cancelPoll != nil {
		w.cancelPoll()
	}
	w.pollMu.Unlock()
	w.scheduler.Stop()
}

// OnChainSwitch registers fn for every applied switch
func (w *Watcher) OnChainSwitch(fn Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// ChainID returns the active chain, 0 before the first successful read
func (w *Watcher) ChainID() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chainID
}

// Account returns the connected wallet address, empty when disconnected
func (w *Watcher) Account() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account
}

// SetAccount records the connected wallet. An empty address disconnects.
func (w *Watcher) SetAccount(address string) {
	address = models.NormalizeAddress(address)
	w.mu.Lock()
	previous := w.account
	w.account = address
	w.mu.Unlock()

	if previous != address {
		w.logger.Info("Wallet account changed",
			zap.String("previous", previous),
			zap.String("current", address))
	}
}

// Poll reads the chain ID once. A newer poll cancels an older one still in
// flight and the older result is discarded.
func (w *Watcher) Poll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	w.pollMu.Lock()
	if w.cancelPoll != nil {
		w.cancelPoll()
	}
	w.pollSeq++
	seq := w.pollSeq
	w.cancelPoll = cancel
	w.pollMu.Unlock()

	id, err := w.provider.ChainID(ctx)

	w.pollMu.Lock()
	current := seq == w.pollSeq
	w.pollMu.Unlock()
	if !current {
		return
	}
	if err != nil {
		w.logger.Warn("Failed to read chain id", zap.Error(err))
		return
	}
	if !id.IsUint64() {
		w.logger.Warn("Chain id out of range", zap.String("chain_id", id.String()))
		return
	}
	w.Switch(id.Uint64())
}

// Switch applies a chain ID report. Chain-bound components are re-pointed
// first; moving from a known chain then clears the store, so nothing fetched
// through the old chain survives the switch.
func (w *Watcher) Switch(chainID uint64) {
	w.mu.Lock()
	previous := w.chainID
	if previous == chainID {
		w.mu.Unlock()
		return
	}
	w.chainID = chainID
	listeners := append([]Listener(nil), w.listeners...)
	w.mu.Unlock()

	for _, b := range w.bound {
		b.SetChainID(chainID)
	}
	if previous != 0 {
		w.store.ClearCache()
		metrics.RecordChainSwitch()
	}
	w.logger.Info("Active chain changed",
		zap.Uint64("previous", previous),
		zap.Uint64("current", chainID))

	for _, fn := range listeners {
		fn(previous, chainID)
	}
}
