package store

import (
	"time"

	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// SetUserLocks replaces the lock list of a wallet
func (s *Store) SetUserLocks(address string, locks []models.LockRecord) {
	key := models.NormalizeAddress(address)
	value := make(map[string]models.LockRecord, len(locks))
	for _, lock := range locks {
		value[lock.Key()] = lock
	}

	s.mu.Lock()
	s.userLocks.set(key, value, s.nowMillis())
	s.mu.Unlock()

	s.written(models.KindUserLocks, key, OpSet)
}

// SetUserLocksLoading toggles the loading flag of a wallet's lock list
func (s *Store) SetUserLocksLoading(address string, loading bool) {
	key := models.NormalizeAddress(address)

	s.mu.Lock()
	s.userLocks.setLoading(key, loading)
	s.mu.Unlock()

	s.written(models.KindUserLocks, key, OpLoading)
}

// GetUserLocks returns the cached locks of a wallet ordered by lock ID
func (s *Store) GetUserLocks(address string) ([]models.LockRecord, bool) {
	key := models.NormalizeAddress(address)

	s.mu.RLock()
	byID, ok := s.userLocks.get(key)
	s.mu.RUnlock()

	metrics.RecordStoreLookup(string(models.KindUserLocks), ok)
	if !ok {
		return nil, false
	}

	locks := make([]models.LockRecord, 0, len(byID))
	for _, lock := range byID {
		locks = append(locks, lock)
	}
	models.SortLocks(locks)
	return locks, true
}

// GetUserLock returns one cached lock of a wallet, including locks written
// with SetUserLock before the full list was fetched.
func (s *Store) GetUserLock(address, lockID string) (models.LockRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.userLocks.entry(models.NormalizeAddress(address))
	if !ok {
		return models.LockRecord{}, false
	}
	lock, ok := entry.Value[lockID]
	return lock, ok
}

// SetUserLock inserts or replaces a single lock. The parent timestamp is kept,
// so a wallet whose list was never fetched stays stale.
func (s *Store) SetUserLock(address string, lock models.LockRecord) {
	key := models.NormalizeAddress(address)

	s.mu.Lock()
	entry, _ := s.userLocks.entry(key)
	next := make(map[string]models.LockRecord, len(entry.Value)+1)
	for id, existing := range entry.Value {
		next[id] = existing
	}
	next[lock.Key()] = lock
	entry.Value = next
	s.userLocks.entries[key] = entry
	s.mu.Unlock()

	s.written(models.KindUserLocks, key, OpSet)
}

// InvalidateUserLock removes one lock without touching its siblings or the
// parent timestamp. The nested map is copied so earlier readers keep a
// consistent snapshot.
func (s *Store) InvalidateUserLock(address, lockID string) {
	key := models.NormalizeAddress(address)

	s.mu.Lock()
	entry, ok := s.userLocks.entry(key)
	if !ok {
		s.mu.Unlock()
		return
	}
	if _, present := entry.Value[lockID]; !present {
		s.mu.Unlock()
		return
	}
	next := make(map[string]models.LockRecord, len(entry.Value))
	for id, lock := range entry.Value {
		if id != lockID {
			next[id] = lock
		}
	}
	entry.Value = next
	s.userLocks.entries[key] = entry
	s.mu.Unlock()

	s.written(models.KindUserLocks, key, OpInvalidate)
}

// UserLocksEntry returns the raw entry including timestamp and loading flag
func (s *Store) UserLocksEntry(address string) (models.Entry[map[string]models.LockRecord], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocks.entry(models.NormalizeAddress(address))
}

// IsUserLocksStale reports whether the wallet's lock list needs a refetch
func (s *Store) IsUserLocksStale(address string, maxAge ...time.Duration) bool {
	entry, _ := s.UserLocksEntry(address)
	return entry.IsStale(s.nowMillis(), s.resolveMaxAge(maxAge))
}
