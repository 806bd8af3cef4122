package store

import (
	"go-reactpad-cache/internal/models"
)

// partition holds the entries of one resource kind keyed by normalized key
type partition[T any] struct {
	entries map[string]models.Entry[T]
}

func newPartition[T any]() partition[T] {
	return partition[T]{entries: make(map[string]models.Entry[T])}
}

// set replaces the entry wholesale and clears its loading flag
func (p *partition[T]) set(key string, value T, nowMillis int64) {
	p.entries[key] = models.Entry[T]{Value: value, FetchedAt: nowMillis}
}

// setLoading toggles the flag only. A missing key gets a never-fetched placeholder.
func (p *partition[T]) setLoading(key string, loading bool) {
	entry := p.entries[key]
	entry.IsLoading = loading
	p.entries[key] = entry
}

func (p *partition[T]) entry(key string) (models.Entry[T], bool) {
	entry, ok := p.entries[key]
	return entry, ok
}

// get returns the value only when it was fetched at least once
func (p *partition[T]) get(key string) (T, bool) {
	entry, ok := p.entries[key]
	if !ok || !entry.Fetched() {
		var zero T
		return zero, false
	}
	return entry.Value, true
}

func (p *partition[T]) delete(key string) {
	delete(p.entries, key)
}

func (p *partition[T]) reset() {
	p.entries = make(map[string]models.Entry[T])
}

// fetched copies every entry that holds a value, dropping loading flags
func (p *partition[T]) fetched() map[string]models.Entry[T] {
	out := make(map[string]models.Entry[T], len(p.entries))
	for key, entry := range p.entries {
		if !entry.Fetched() {
			continue
		}
		entry.IsLoading = false
		out[key] = entry
	}
	return out
}
