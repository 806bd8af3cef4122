// Package store holds the chain state fetched for the UI: token lists and
// lock lists per wallet, the market list and the presale address list.
// Values are full snapshots of chain state, so concurrent writers race with
// last-write-wins semantics and no version checks.
package store

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

const singletonKey = "*"

// Store is the process cache of chain state. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	clock  clock.Clock
	maxAge time.Duration
	logger *zap.Logger

	userTokens       partition[[]models.TokenInfo]
	userLocks        partition[map[string]models.LockRecord]
	markets          partition[[]models.Market]
	presaleAddresses partition[[]string]

	subsMu  sync.RWMutex
	subs    map[int]func(Change)
	nextSub int
}

// New creates an empty store. A zero maxAge selects models.DefaultMaxAge.
func New(clk clock.Clock, maxAge time.Duration, logger *zap.Logger) *Store {
	if clk == nil {
		clk = clock.New()
	}
	if maxAge <= 0 {
		maxAge = models.DefaultMaxAge
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		clock:            clk,
		maxAge:           maxAge,
		logger:           logger,
		userTokens:       newPartition[[]models.TokenInfo](),
		userLocks:        newPartition[map[string]models.LockRecord](),
		markets:          newPartition[[]models.Market](),
		presaleAddresses: newPartition[[]string](),
		subs:             make(map[int]func(Change)),
	}
}

// MaxAge returns the default staleness threshold
func (s *Store) MaxAge() time.Duration {
	return s.maxAge
}

// Now returns the current time of the store clock
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

func (s *Store) nowMillis() int64 {
	return s.clock.Now().UnixMilli()
}

// resolveMaxAge applies an optional per-call override
func (s *Store) resolveMaxAge(override []time.Duration) time.Duration {
	if len(override) > 0 && override[0] > 0 {
		return override[0]
	}
	return s.maxAge
}

// ClearCache resets every partition. It runs when the active chain changes,
// since cached values are not chain-qualified.
func (s *Store) ClearCache() {
	s.mu.Lock()
	s.userTokens.reset()
	s.userLocks.reset()
	s.markets.reset()
	s.presaleAddresses.reset()
	s.mu.Unlock()

	metrics.RecordStoreClear()
	s.logger.Info("Cache store cleared")
	s.notify(Change{Op: OpClear})
}

// ClearUserCache drops the token and lock entries of one wallet
func (s *Store) ClearUserCache(address string) {
	key := models.NormalizeAddress(address)

	s.mu.Lock()
	s.userTokens.delete(key)
	s.userLocks.delete(key)
	s.mu.Unlock()

	metrics.RecordStoreWrite(string(models.KindUserTokens), string(OpInvalidate))
	metrics.RecordStoreWrite(string(models.KindUserLocks), string(OpInvalidate))
	s.logger.Debug("User cache cleared", zap.String("address", key))
	s.notify(Change{Kind: models.KindUserTokens, Key: key, Op: OpInvalidate})
	s.notify(Change{Kind: models.KindUserLocks, Key: key, Op: OpInvalidate})
}
