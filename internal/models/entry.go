package models

import "time"

// DefaultMaxAge is how long a store entry is trusted before a refetch is due
const DefaultMaxAge = 5 * time.Minute

// ResourceKind names a store partition
type ResourceKind string

const (
	KindUserTokens       ResourceKind = "user_tokens"
	KindUserLocks        ResourceKind = "user_locks"
	KindMarkets          ResourceKind = "markets"
	KindPresaleAddresses ResourceKind = "presale_addresses"
	KindPresale          ResourceKind = "presale"
)

// Entry is one cached snapshot of a resource.
// FetchedAt is epoch milliseconds; zero means the value was never fetched.
type Entry[T any] struct {
	Value     T     `json:"value"`
	FetchedAt int64 `json:"fetchedAt"`
	IsLoading bool  `json:"-"`
}

// Fetched reports whether the entry holds a fetched value
func (e Entry[T]) Fetched() bool {
	return e.FetchedAt != 0
}

// IsStale reports whether the entry is older than maxAge at nowMillis
func (e Entry[T]) IsStale(nowMillis int64, maxAge time.Duration) bool {
	if e.FetchedAt == 0 {
		return true
	}
	return nowMillis-e.FetchedAt > maxAge.Milliseconds()
}
