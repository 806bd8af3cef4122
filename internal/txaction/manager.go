package txaction

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/interfaces"
)

// ErrUnknownAction is returned for an id the manager never issued
var ErrUnknownAction = errors.New("unknown action")

// Manager runs submitted requests in the background and keeps their status
// for polling. Settled actions are dropped once the retention window passes.
type Manager struct {
	backend     interfaces.TxBackend
	invalidator interfaces.Invalidator
	abis        *chain.ABIs
	opts        Options
	logger      *zap.Logger

	seq     atomic.Uint64
	mu      sync.RWMutex
	actions map[string]*Action
	settled map[string]time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager creates a Manager. Close cancels actions still waiting for receipts.
func NewManager(backend interfaces.TxBackend, invalidator interfaces.Invalidator, abis *chain.ABIs, opts Options, logger *zap.Logger) *Manager {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		backend:     backend,
		invalidator: invalidator,
		abis:        abis,
		opts:        opts,
		logger:      logger,
		actions:     make(map[string]*Action),
		settled:     make(map[string]time.Time),
		baseCtx:     ctx,
		cancel:      cancel,
	}
}

// Submit validates req and starts it. The returned id is used with Get.
func (m *Manager) Submit(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	id := strconv.FormatUint(m.seq.Add(1), 10)
	action := NewAction(req.Action, m.backend, m.invalidator, m.abis, m.opts, m.logger.With(zap.String("id", id)))

	m.mu.Lock()
	m.evictLocked()
	m.actions[id] = action
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		_, _ = action.Run(m.baseCtx, req)

		m.mu.Lock()
		if _, ok := m.actions[id]; ok {
			m.settled[id] = m.opts.Clock.Now()
		}
		m.mu.Unlock()
	}()
	return id, nil
}

// evictLocked drops actions settled longer than the retention window ago
func (m *Manager) evictLocked() {
	cutoff := m.opts.Clock.Now().Add(-m.opts.Retention)
	for id, at := range m.settled {
		if at.Before(cutoff) {
			delete(m.actions, id)
			delete(m.settled, id)
		}
	}
}

// Get returns the status of a submitted action
func (m *Manager) Get(id string) (Status, error) {
	m.mu.RLock()
	action, ok := m.actions[id]
	m.mu.RUnlock()
	if !ok {
		return Status{}, ErrUnknownAction
	}
	return action.Status(), nil
}

// Forget drops a settled action's status
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if action, ok := m.actions[id]; ok && action.Status().Phase.IsSettled() {
		delete(m.actions, id)
		delete(m.settled, id)
	}
}

// Close cancels running actions and waits for them to settle
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
