package store

import (
	"go-reactpad-cache/internal/models"
)

// Snapshot is the persistable part of the store. Loading flags are volatile
// and never included.
type Snapshot struct {
	UserTokens       map[string]models.Entry[[]models.TokenInfo]           `json:"userTokens"`
	UserLocks        map[string]models.Entry[map[string]models.LockRecord] `json:"userLocks"`
	Markets          *models.Entry[[]models.Market]                        `json:"markets,omitempty"`
	PresaleAddresses *models.Entry[[]string]                               `json:"presaleAddresses,omitempty"`
}

// Snapshot copies every fetched entry
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		UserTokens: s.userTokens.fetched(),
		UserLocks:  s.userLocks.fetched(),
	}
	if entry, ok := s.markets.fetched()[singletonKey]; ok {
		snap.Markets = &entry
	}
	if entry, ok := s.presaleAddresses.fetched()[singletonKey]; ok {
		snap.PresaleAddresses = &entry
	}
	return snap
}

// Restore replaces the store contents with snap. Keys are normalized again
// and every loading flag starts false.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.userTokens.reset()
	s.userLocks.reset()
	s.markets.reset()
	s.presaleAddresses.reset()

	for key, entry := range snap.UserTokens {
		if !entry.Fetched() {
			continue
		}
		entry.IsLoading = false
		s.userTokens.entries[models.NormalizeAddress(key)] = entry
	}
	for key, entry := range snap.UserLocks {
		if !entry.Fetched() {
			continue
		}
		entry.IsLoading = false
		if entry.Value == nil {
			entry.Value = make(map[string]models.LockRecord)
		}
		s.userLocks.entries[models.NormalizeAddress(key)] = entry
	}
	if snap.Markets != nil && snap.Markets.Fetched() {
		entry := *snap.Markets
		entry.IsLoading = false
		s.markets.entries[singletonKey] = entry
	}
	if snap.PresaleAddresses != nil && snap.PresaleAddresses.Fetched() {
		entry := *snap.PresaleAddresses
		entry.IsLoading = false
		s.presaleAddresses.entries[singletonKey] = entry
	}
	s.mu.Unlock()

	s.notify(Change{Op: OpRestore})
}
