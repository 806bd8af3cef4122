// Package hooks implements the read paths consumers use: each query serves
// the cache store's snapshot and revalidates it against the chain when it is
// missing or stale.
package hooks

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"go-reactpad-cache/internal/interfaces"
	"go-reactpad-cache/internal/metadata"
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/store"
)

var _ interfaces.Invalidator = (*Hooks)(nil)

// Hooks builds queries over one store and chain reader
type Hooks struct {
	store    *store.Store
	reader   interfaces.ChainReader
	metadata interfaces.MetadataSource
	timeout  time.Duration
	logger   *zap.Logger

	group      singleflight.Group
	generation atomic.Uint64

	errMu sync.Mutex
	errs  map[string]error

	presaleMu sync.Mutex
	presales  map[string]models.Entry[models.PresaleView]

	baseCtx     context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubscribe func()
}

// New creates the hooks. metadataSource may be nil. timeout bounds each
// live fetch; zero leaves fetches to the caller's context.
func New(st *store.Store, reader interfaces.ChainReader, metadataSource interfaces.MetadataSource, timeout time.Duration, logger *zap.Logger) *Hooks {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hooks{
		store:    st,
		reader:   reader,
		metadata: metadataSource,
		timeout:  timeout,
		logger:   logger,
		errs:     make(map[string]error),
		presales: make(map[string]models.Entry[models.PresaleView]),
		baseCtx:  ctx,
		cancel:   cancel,
	}
	h.unsubscribe = st.Subscribe(h.onChange)
	return h
}

// Close stops background revalidation and waits for it to finish
func (h *Hooks) Close() {
	h.unsubscribe()
	h.cancel()
	h.wg.Wait()
}

// onChange starts a new generation when the store is cleared, so fetches
// started before a chain switch cannot write into the new chain's cache.
func (h *Hooks) onChange(change store.Change) {
	if change.Op != store.OpClear {
		return
	}
	h.generation.Add(1)

	h.presaleMu.Lock()
	h.presales = make(map[string]models.Entry[models.PresaleView])
	h.presaleMu.Unlock()

	h.errMu.Lock()
	h.errs = make(map[string]error)
	h.errMu.Unlock()
}

func (h *Hooks) revalidate(key string, refetch func(ctx context.Context)) {
	if h.baseCtx.Err() != nil {
		return
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.logger.Debug("Revalidating stale entry", zap.String("key", key))
		refetch(h.baseCtx)
	}()
}

func (h *Hooks) lastError(key string) error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	return h.errs[key]
}

func (h *Hooks) setLastError(key string, err error) {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	if err == nil {
		delete(h.errs, key)
		return
	}
	h.errs[key] = err
}

// UserTokens is the token list query of a wallet
func (h *Hooks) UserTokens(address string) *Query[[]models.TokenInfo] {
	key := models.NormalizeAddress(address)
	return &Query[[]models.TokenInfo]{h: h, b: binding[[]models.TokenInfo]{
		kind:       models.KindUserTokens,
		key:        key,
		entry:      func() (models.Entry[[]models.TokenInfo], bool) { return h.store.UserTokensEntry(key) },
		isStale:    func() bool { return h.store.IsUserTokensStale(key) },
		set:        func(v []models.TokenInfo) { h.store.SetUserTokens(key, v) },
		setLoading: func(loading bool) { h.store.SetUserTokensLoading(key, loading) },
		fetch: func(ctx context.Context) ([]models.TokenInfo, error) {
			return h.reader.UserTokens(ctx, key)
		},
	}}
}

// UserLocks is the lock list query of a wallet
func (h *Hooks) UserLocks(address string) *Query[[]models.LockRecord] {
	key := models.NormalizeAddress(address)
	return &Query[[]models.LockRecord]{h: h, b: binding[[]models.LockRecord]{
		kind: models.KindUserLocks,
		key:  key,
		entry: func() (models.Entry[[]models.LockRecord], bool) {
			entry, ok := h.store.UserLocksEntry(key)
			locks := make([]models.LockRecord, 0, len(entry.Value))
			for _, lock := range entry.Value {
				locks = append(locks, lock)
			}
			models.SortLocks(locks)
			return models.Entry[[]models.LockRecord]{Value: locks, FetchedAt: entry.FetchedAt, IsLoading: entry.IsLoading}, ok
		},
		isStale:    func() bool { return h.store.IsUserLocksStale(key) },
		set:        func(v []models.LockRecord) { h.store.SetUserLocks(key, v) },
		setLoading: func(loading bool) { h.store.SetUserLocksLoading(key, loading) },
		fetch: func(ctx context.Context) ([]models.LockRecord, error) {
			return h.reader.UserLocks(ctx, key)
		},
	}}
}

// Markets is the market list query
func (h *Hooks) Markets() *Query[[]models.Market] {
	return &Query[[]models.Market]{h: h, b: binding[[]models.Market]{
		kind:       models.KindMarkets,
		entry:      h.store.MarketsEntry,
		isStale:    func() bool { return h.store.IsMarketsStale() },
		set:        h.store.SetMarkets,
		setLoading: h.store.SetMarketsLoading,
		fetch:      h.reader.Markets,
	}}
}

// PresaleAddresses is the presale list query
func (h *Hooks) PresaleAddresses() *Query[[]string] {
	return &Query[[]string]{h: h, b: binding[[]string]{
		kind:       models.KindPresaleAddresses,
		entry:      h.store.PresaleAddressesEntry,
		isStale:    func() bool { return h.store.IsPresaleAddressesStale() },
		set:        h.store.SetPresaleAddresses,
		setLoading: h.store.SetPresaleAddressesLoading,
		fetch:      h.reader.PresaleAddresses,
	}}
}

// Presale is the detail query of one presale. Details are held by the hooks
// only and are never persisted.
func (h *Hooks) Presale(address string) *Query[models.PresaleView] {
	key := models.NormalizeAddress(address)
	return &Query[models.PresaleView]{h: h, b: binding[models.PresaleView]{
		kind: models.KindPresale,
		key:  key,
		entry: func() (models.Entry[models.PresaleView], bool) {
			h.presaleMu.Lock()
			defer h.presaleMu.Unlock()
			entry, ok := h.presales[key]
			return entry, ok
		},
		isStale: func() bool {
			h.presaleMu.Lock()
			entry := h.presales[key]
			h.presaleMu.Unlock()
			return entry.IsStale(h.store.Now().UnixMilli(), h.store.MaxAge())
		},
		set: func(v models.PresaleView) {
			h.presaleMu.Lock()
			defer h.presaleMu.Unlock()
			h.presales[key] = models.Entry[models.PresaleView]{Value: v, FetchedAt: h.store.Now().UnixMilli()}
		},
		setLoading: func(loading bool) {
			h.presaleMu.Lock()
			defer h.presaleMu.Unlock()
			entry := h.presales[key]
			entry.IsLoading = loading
			h.presales[key] = entry
		},
		fetch: func(ctx context.Context) (models.PresaleView, error) {
			return h.fetchPresale(ctx, key)
		},
	}}
}

func (h *Hooks) fetchPresale(ctx context.Context, address string) (models.PresaleView, error) {
	info, err := h.reader.Presale(ctx, address)
	if err != nil {
		return models.PresaleView{}, err
	}
	view := models.PresaleView{Info: info}
	if h.metadata == nil {
		return view, nil
	}

	meta, err := h.metadata.PresaleMetadata(ctx, address)
	switch {
	case err == nil:
		view.Metadata = meta
	case errors.Is(err, metadata.ErrMetadataNotFound):
		h.logger.Debug("Presale has no metadata", zap.String("address", address))
	default:
		// chain state is still useful without the description
		h.logger.Warn("Failed to fetch presale metadata", zap.String("address", address), zap.Error(err))
	}
	return view, nil
}

// Lock returns one lock of a wallet. A lock missing from the cache is read
// from the chain and inserted when it belongs to the wallet.
func (h *Hooks) Lock(ctx context.Context, address, lockID string) (models.LockRecord, bool, error) {
	id, ok := new(big.Int).SetString(lockID, 10)
	if !ok || id.Sign() < 0 {
		return models.LockRecord{}, false, errors.New("lock id must be a base-10 integer")
	}
	lockID = id.String()
	if lock, ok := h.store.GetUserLock(address, lockID); ok {
		return lock, true, nil
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	generation := h.generation.Load()
	lock, err := h.reader.Lock(ctx, id)
	if err != nil {
		h.logger.Error("Lock fetch failed", zap.String("lock_id", lockID), zap.Error(err))
		return models.LockRecord{}, false, err
	}
	if lock.Owner != models.NormalizeAddress(address) {
		return models.LockRecord{}, false, nil
	}
	if h.generation.Load() == generation {
		h.store.SetUserLock(address, lock)
	}
	return lock, true, nil
}

// Participation reads an account's whitelist status and contribution in a
// presale. Both change with every contribution, so they bypass the store.
func (h *Hooks) Participation(ctx context.Context, presale, account string) (models.Participation, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var (
		whitelisted bool
		amount      *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		whitelisted, err = h.reader.IsWhitelisted(gctx, presale, account)
		return err
	})
	g.Go(func() error {
		var err error
		amount, err = h.reader.Contribution(gctx, presale, account)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Participation{}, err
	}
	return models.Participation{Whitelisted: whitelisted, Contribution: models.NewBigInt(amount)}, nil
}

// Invalidate drops the cached state a confirmed transaction changed. Shared
// lists are refetched in the background instead, since the store has no way
// to mark them stale.
func (h *Hooks) Invalidate(inv models.Invalidation) {
	switch inv.Kind {
	case models.KindUserTokens:
		h.store.ClearUserCache(inv.Address)
	case models.KindUserLocks:
		if inv.LockID != "" {
			h.store.InvalidateUserLock(inv.Address, inv.LockID)
			return
		}
		h.store.ClearUserCache(inv.Address)
	case models.KindPresale:
		h.presaleMu.Lock()
		delete(h.presales, models.NormalizeAddress(inv.Address))
		h.presaleMu.Unlock()
	case models.KindPresaleAddresses:
		q := h.PresaleAddresses()
		h.revalidate(q.flightKey(), func(ctx context.Context) { q.Refetch(ctx) })
	case models.KindMarkets:
		q := h.Markets()
		h.revalidate(q.flightKey(), func(ctx context.Context) { q.Refetch(ctx) })
	default:
		h.logger.Warn("Unknown invalidation kind", zap.String("kind", string(inv.Kind)))
	}
}
