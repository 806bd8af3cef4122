package store

import (
	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// ChangeOp describes a store mutation
type ChangeOp string

const (
	OpSet        ChangeOp = "set"
	OpLoading    ChangeOp = "loading"
	OpInvalidate ChangeOp = "invalidate"
	OpClear      ChangeOp = "clear"
	OpRestore    ChangeOp = "restore"
)

// Change is emitted to subscribers after every mutation.
// Kind and Key are empty for OpClear and OpRestore.
type Change struct {
	Kind models.ResourceKind
	Key  string
	Op   ChangeOp
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe function. fn runs synchronously on the mutating goroutine
// after the store lock is released and must not block.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) notify(change Change) {
	s.subsMu.RLock()
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}

func (s *Store) written(kind models.ResourceKind, key string, op ChangeOp) {
	metrics.RecordStoreWrite(string(kind), string(op))
	s.notify(Change{Kind: kind, Key: key, Op: op})
}
