package store

import (
	"time"

	"go-reactpad-cache/internal/metrics"
	"go-reactpad-cache/internal/models"
)

// SetUserTokens replaces the token list of a wallet
func (s *Store) SetUserTokens(address string, tokens []models.TokenInfo) {
	key := models.NormalizeAddress(address)
	value := append([]models.TokenInfo(nil), tokens...)

	s.mu.Lock()
	s.userTokens.set(key, value, s.nowMillis())
	s.mu.Unlock()

	s.written(models.KindUserTokens, key, OpSet)
}

// SetUserTokensLoading toggles the loading flag of a wallet's token list
func (s *Store) SetUserTokensLoading(address string, loading bool) {
	key := models.NormalizeAddress(address)

	s.mu.Lock()
	s.userTokens.setLoading(key, loading)
	s.mu.Unlock()

	s.written(models.KindUserTokens, key, OpLoading)
}

// GetUserTokens returns the cached token list of a wallet
func (s *Store) GetUserTokens(address string) ([]models.TokenInfo, bool) {
	key := models.NormalizeAddress(address)

	s.mu.RLock()
	tokens, ok := s.userTokens.get(key)
	s.mu.RUnlock()

	metrics.RecordStoreLookup(string(models.KindUserTokens), ok)
	return tokens, ok
}

// UserTokensEntry returns the raw entry including timestamp and loading flag
func (s *Store) UserTokensEntry(address string) (models.Entry[[]models.TokenInfo], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userTokens.entry(models.NormalizeAddress(address))
}

// IsUserTokensStale reports whether the wallet's token list needs a refetch
func (s *Store) IsUserTokensStale(address string, maxAge ...time.Duration) bool {
	entry, _ := s.UserTokensEntry(address)
	return entry.IsStale(s.nowMillis(), s.resolveMaxAge(maxAge))
}
