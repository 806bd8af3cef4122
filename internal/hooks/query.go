package hooks

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-reactpad-cache/internal/cache"
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// State is what a read hook exposes to its consumer
type State[T any] struct {
	Data      T     `json:"data"`
	Found     bool  `json:"found"`
	Stale     bool  `json:"stale"`
	IsLoading bool  `json:"loading"`
	FetchedAt int64 `json:"fetched_at"`
	Err       error `json:"-"`
}

// binding connects a query to the partition its value lives in
type binding[T any] struct {
	kind       models.ResourceKind
	key        string
	entry      func() (models.Entry[T], bool)
	isStale    func() bool
	set        func(T)
	setLoading func(bool)
	fetch      func(ctx context.Context) (T, error)
}

// Query is the read hook for one resource key
type Query[T any] struct {
	h *Hooks
	b binding[T]
}

// State reads the current snapshot without fetching
func (q *Query[T]) State() State[T] {
	entry, _ := q.b.entry()
	state := State[T]{
		IsLoading: entry.IsLoading,
		FetchedAt: entry.FetchedAt,
		Found:     entry.Fetched(),
		Stale:     q.b.isStale(),
		Err:       q.h.lastError(q.flightKey()),
	}
	if state.Found {
		state.Data = entry.Value
	}
	return state
}

// Get serves cached data when present. Missing data is fetched before
// returning; stale data is returned as is and revalidated in the background.
func (q *Query[T]) Get(ctx context.Context) State[T] {
	state := q.State()
	switch {
	case !state.Found:
		return q.Refetch(ctx)
	case state.Stale:
		q.h.revalidate(q.flightKey(), func(bg context.Context) { q.Refetch(bg) })
	}
	return state
}

// Refetch always performs a live fetch, skipping the call cache. A failure is
// recorded on the returned state and the cached value is left untouched.
// Concurrent callers share one fetch that outlives any single caller; a
// caller whose ctx ends stops waiting and gets the current snapshot.
func (q *Query[T]) Refetch(ctx context.Context) State[T] {
	generation := q.h.generation.Load()
	flightKey := q.keyFor(generation)

	ch := q.h.group.DoChan(flightKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithCancel(cache.WithLiveRead(context.WithoutCancel(ctx)))
		defer cancel()
		stop := context.AfterFunc(q.h.baseCtx, cancel)
		defer stop()
		return nil, q.fetchAndStore(fetchCtx, flightKey, generation)
	})

	var err error
	select {
	case res := <-ch:
		err = res.Err
		if res.Shared {
			q.h.logger.Debug("Joined in-flight fetch", zap.String("key", flightKey))
		}
	case <-ctx.Done():
		err = ctx.Err()
	}

	state := q.State()
	if err != nil {
		state.Err = err
	}
	return state
}

func (q *Query[T]) fetchAndStore(ctx context.Context, flightKey string, generation uint64) (err error) {
	kind := string(q.b.kind)
	timer := metrics.TimeFetch(kind)
	defer timer()

	q.b.setLoading(true)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch %s panicked: %v", kind, r)
		}
		if err != nil {
			if q.h.generation.Load() == generation {
				q.b.setLoading(false)
			}
			q.h.logger.Error("Fetch failed",
				zap.String("kind", kind),
				zap.String("key", q.b.key),
				zap.Error(err))
		}
		metrics.RecordFetch(kind, err)
		q.h.setLastError(flightKey, err)
	}()

	if q.h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.h.timeout)
		defer cancel()
	}

	value, err := q.b.fetch(ctx)
	if err != nil {
		return err
	}

	// the chain changed while the fetch was in flight; the store was already
	// cleared and the result belongs to the old chain
	if q.h.generation.Load() != generation {
		q.h.logger.Debug("Dropping result fetched before chain switch",
			zap.String("kind", kind),
			zap.String("key", q.b.key))
		return nil
	}

	q.b.set(value)
	return nil
}

// flightKey identifies the resource within the current chain generation
func (q *Query[T]) flightKey() string {
	return q.keyFor(q.h.generation.Load())
}

func (q *Query[T]) keyFor(generation uint64) string {
	return fmt.Sprintf("%d:%s:%s", generation, q.b.kind, q.b.key)
}
