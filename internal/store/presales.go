package store

import (
	"time"

	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// SetPresaleAddresses replaces the presale address list
func (s *Store) SetPresaleAddresses(addresses []string) {
	value := make([]string, len(addresses))
	for i, address := range addresses {
		value[i] = models.NormalizeAddress(address)
	}

	s.mu.Lock()
	s.presaleAddresses.set(singletonKey, value, s.nowMillis())
	s.mu.Unlock()

	s.written(models.KindPresaleAddresses, "", OpSet)
}

// SetPresaleAddressesLoading toggles the loading flag of the presale address list
func (s *Store) SetPresaleAddressesLoading(loading bool) {
	s.mu.Lock()
	s.presaleAddresses.setLoading(singletonKey, loading)
	s.mu.Unlock()

	s.written(models.KindPresaleAddresses, "", OpLoading)
}

// GetPresaleAddresses returns the cached presale address list
func (s *Store) GetPresaleAddresses() ([]string, bool) {
	s.mu.RLock()
	addresses, ok := s.presaleAddresses.get(singletonKey)
	s.mu.RUnlock()

	metrics.RecordStoreLookup(string(models.KindPresaleAddresses), ok)
	return addresses, ok
}

// PresaleAddressesEntry returns the raw entry including timestamp and loading flag
func (s *Store) PresaleAddressesEntry() (models.Entry[[]string], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presaleAddresses.entry(singletonKey)
}

// IsPresaleAddressesStale reports whether the presale address list needs a refetch
func (s *Store) IsPresaleAddressesStale(maxAge ...time.Duration) bool {
	entry, _ := s.PresaleAddressesEntry()
	return entry.IsStale(s.nowMillis(), s.resolveMaxAge(maxAge))
}
