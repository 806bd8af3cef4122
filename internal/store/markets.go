package store

import (
	"time"

	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// SetMarkets replaces the market list
func (s *Store) SetMarkets(markets []models.Market) {
	value := append([]models.Market(nil), markets...)

	s.mu.Lock()
	s.markets.set(singletonKey, value, s.nowMillis())
	s.mu.Unlock()

	s.written(models.KindMarkets, "", OpSet)
}

// SetMarketsLoading toggles the loading flag of the market list
func (s *Store) SetMarketsLoading(loading bool) {
	s.mu.Lock()
	s.markets.setLoading(singletonKey, loading)
	s.mu.Unlock()

	s.written(models.KindMarkets, "", OpLoading)
}

// GetMarkets returns the cached market list
func (s *Store) GetMarkets() ([]models.Market, bool) {
	s.mu.RLock()
	markets, ok := s.markets.get(singletonKey)
	s.mu.RUnlock()

	metrics.RecordStoreLookup(string(models.KindMarkets), ok)
	return markets, ok
}

// MarketsEntry returns the raw entry including timestamp and loading flag
func (s *Store) MarketsEntry() (models.Entry[[]models.Market], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markets.entry(singletonKey)
}

// IsMarketsStale reports whether the market list needs a refetch
func (s *Store) IsMarketsStale(maxAge ...time.Duration) bool {
	entry, _ := s.MarketsEntry()
	return entry.IsStale(s.nowMillis(), s.resolveMaxAge(maxAge))
}
