package persist

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/store"
)

// Syncer mirrors the store into a Persister. Mutations are coalesced and
// written at most once per debounce window.
type Syncer struct {
	store     *store.Store
	persister interfaces.Persister
	chainID   atomic.Uint64
	debounce  time.Duration
	clock     clock.Clock
	logger    *zap.Logger

	dirty chan struct{}

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	unsubscribe func()
	wg          sync.WaitGroup
}

// NewSyncer creates a syncer for the store of chainID
func NewSyncer(st *store.Store, persister interfaces.Persister, chainID uint64, debounce time.Duration, clk clock.Clock, logger *zap.Logger) *Syncer {
	if clk == nil {
		clk = clock.New()
	}
	s := &Syncer{
		store:     st,
		persister: persister,
		debounce:  debounce,
		clock:     clk,
		logger:    logger,
		dirty:     make(chan struct{}, 1),
	}
	s.chainID.Store(chainID)
	return s
}

// SetChainID changes the chain written snapshots are tagged with
func (s *Syncer) SetChainID(chainID uint64) {
	s.chainID.Store(chainID)
}

// Restore loads the persisted snapshot into the store. An unreadable or
// outdated document, or one written for another chain, is logged and skipped
// so the store starts empty.
func (s *Syncer) Restore(ctx context.Context) error {
	data, err := s.persister.Load(ctx)
	metrics.RecordPersist("load", err)
	if err != nil {
		return err
	}
	if data == nil {
		s.logger.Info("No persisted cache state found")
		return nil
	}

	snap, chainID, err := Decode(data)
	if err != nil {
		metrics.RecordPersist("decode", err)
		s.logger.Warn("Discarding persisted cache state", zap.Error(err))
		return nil
	}
	if want := s.chainID.Load(); chainID != want {
		s.logger.Info("Discarding persisted cache state of another chain",
			zap.Uint64("persisted_chain_id", chainID),
			zap.Uint64("chain_id", want))
		return nil
	}

	s.store.Restore(snap)
	s.logger.Info("Restored cache state",
		zap.Int("user_tokens", len(snap.UserTokens)),
		zap.Int("user_locks", len(snap.UserLocks)))
	return nil
}

// Start subscribes to store changes and begins the background writer
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.unsubscribe = s.store.Subscribe(s.onChange)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop ends the background writer. Pending changes are not written; call Flush.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.unsubscribe()
	s.cancel()
	s.wg.Wait()
	s.running = false
}

// Flush writes the current snapshot immediately
func (s *Syncer) Flush(ctx context.Context) error {
	data, err := Encode(s.chainID.Load(), s.store.Snapshot())
	if err != nil {
		metrics.RecordPersist("encode", err)
		return err
	}

	err = s.persister.Save(ctx, data)
	metrics.RecordPersist("save", err)
	if err != nil {
		return err
	}
	s.logger.Debug("Persisted cache state", zap.Int("bytes", len(data)))
	return nil
}

// onChange marks the store dirty. Loading flags are volatile and a restore
// already matches what is on disk.
func (s *Syncer) onChange(change store.Change) {
	if change.Op == store.OpLoading || change.Op == store.OpRestore {
		return
	}
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Syncer) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
		}

		timer := s.clock.Timer(s.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		// changes made during the window are covered by this write
		select {
		case <-s.dirty:
		default:
		}

		if err := s.Flush(ctx); err != nil {
			s.logger.Error("Failed to persist cache state", zap.Error(err))
		}
	}
}
