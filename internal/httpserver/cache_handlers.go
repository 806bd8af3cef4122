package httpserver

import (
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"go-reactpad-cache/internal/hooks"
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/presale"
)

// pathAddress reads and checks the {address} route variable
func (s *Server) pathAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := mux.Vars(r)["address"]
	if !common.IsHexAddress(address) {
		s.writeErrorResponse(w, "Invalid address", http.StatusBadRequest)
		return "", false
	}
	return models.NormalizeAddress(address), true
}

func pathLockID(r *http.Request) (string, bool) {
	id, ok := new(big.Int).SetString(mux.Vars(r)["lockId"], 10)
	if !ok || id.Sign() < 0 {
		return "", false
	}
	return id.String(), true
}

// refresh reports whether the caller asked to bypass cached data
func refresh(r *http.Request) bool {
	v := r.URL.Query().Get("refresh")
	return v == "1" || strings.EqualFold(v, "true")
}

func toResponse[T any](state hooks.State[T]) QueryResponse {
	resp := QueryResponse{
		Found:     state.Found,
		Stale:     state.Stale,
		FetchedAt: state.FetchedAt,
		Loading:   state.IsLoading,
	}
	if state.Found {
		resp.Data = state.Data
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}
	return resp
}

// writeQuery answers with the hook state. A failed fetch with nothing cached
// is a bad gateway; with cached data the error rides along.
func writeQuery[T any](s *Server, w http.ResponseWriter, r *http.Request, q *hooks.Query[T]) {
	var state hooks.State[T]
	if refresh(r) {
		state = q.Refetch(r.Context())
	} else {
		state = q.Get(r.Context())
	}

	resp := toResponse(state)
	if !state.Found && state.Err != nil {
		s.writeStatus(w, http.StatusBadGateway, resp)
		return
	}
	s.writeResponse(w, resp)
}

func (s *Server) handleUserTokens(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	writeQuery(s, w, r, s.hooks.UserTokens(address))
}

func (s *Server) handleUserLocks(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	writeQuery(s, w, r, s.hooks.UserLocks(address))
}

func (s *Server) handleUserLock(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	lockID, ok := pathLockID(r)
	if !ok {
		s.writeErrorResponse(w, "Invalid lock id", http.StatusBadRequest)
		return
	}

	lock, found, err := s.hooks.Lock(r.Context(), address, lockID)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadGateway)
		return
	}
	if !found {
		s.writeErrorResponse(w, "Lock not found", http.StatusNotFound)
		return
	}
	s.writeResponse(w, QueryResponse{Found: true, Data: lock})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	writeQuery(s, w, r, s.hooks.Markets())
}

func (s *Server) handlePresaleAddresses(w http.ResponseWriter, r *http.Request) {
	writeQuery(s, w, r, s.hooks.PresaleAddresses())
}

// handlePresale serves one presale with status, countdown and gates derived
// for the connected account (or ?account=).
func (s *Server) handlePresale(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}

	q := s.hooks.Presale(address)
	var state hooks.State[models.PresaleView]
	if refresh(r) {
		state = q.Refetch(r.Context())
	} else {
		state = q.Get(r.Context())
	}

	resp := PresaleResponse{QueryResponse: toResponse(state)}
	if !state.Found {
		if state.Err != nil {
			s.writeStatus(w, http.StatusBadGateway, resp)
			return
		}
		s.writeResponse(w, resp)
		return
	}

	account := r.URL.Query().Get("account")
	if account == "" {
		account = s.session.Account()
	}
	view := presale.Derive(s.store.Now(), state.Data.Info, account)
	resp.View = &view
	s.writeResponse(w, resp)
}

// handleParticipation reports whitelist status and contribution of an account
func (s *Server) handleParticipation(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	account := mux.Vars(r)["account"]
	if !common.IsHexAddress(account) {
		s.writeErrorResponse(w, "Invalid account", http.StatusBadRequest)
		return
	}

	p, err := s.hooks.Participation(r.Context(), address, models.NormalizeAddress(account))
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusBadGateway)
		return
	}
	s.writeResponse(w, p)
}

// handleRefetchUser reloads the tokens and locks of a wallet
func (s *Server) handleRefetchUser(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}

	tokens := s.hooks.UserTokens(address).Refetch(r.Context())
	locks := s.hooks.UserLocks(address).Refetch(r.Context())

	s.writeResponse(w, map[string]interface{}{
		"success": tokens.Err == nil && locks.Err == nil,
		"tokens":  toResponse(tokens),
		"locks":   toResponse(locks),
	})
}

func (s *Server) handleClearUser(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	s.store.ClearUserCache(address)
	s.writeResponse(w, map[string]interface{}{"success": true})
}

func (s *Server) handleInvalidateLock(w http.ResponseWriter, r *http.Request) {
	address, ok := s.pathAddress(w, r)
	if !ok {
		return
	}
	lockID, ok := pathLockID(r)
	if !ok {
		s.writeErrorResponse(w, "Invalid lock id", http.StatusBadRequest)
		return
	}
	s.store.InvalidateUserLock(address, lockID)
	s.writeResponse(w, map[string]interface{}{"success": true})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.ClearCache()
	s.writeResponse(w, map[string]interface{}{"success": true})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, SessionResponse{
		ChainID: s.session.ChainID(),
		Account: s.session.Account(),
	})
}

func (s *Server) handleSetAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Address != "" && !common.IsHexAddress(req.Address) {
		s.writeErrorResponse(w, "Invalid address", http.StatusBadRequest)
		return
	}
	s.session.SetAccount(req.Address)
	s.handleSession(w, r)
}

// handleCallInfo reports how the call cache would treat a contract call
func (s *Server) handleCallInfo(w http.ResponseWriter, r *http.Request) {
	var req CallInfoRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !common.IsHexAddress(req.To) || req.Data == "" {
		s.writeErrorResponse(w, "Missing required fields: to, data", http.StatusBadRequest)
		return
	}
	data, err := hexutil.Decode(req.Data)
	if err != nil {
		s.writeErrorResponse(w, "Invalid call data", http.StatusBadRequest)
		return
	}

	to := common.HexToAddress(req.To)
	var block *big.Int
	if req.Block != nil {
		block = big.NewInt(*req.Block)
	}
	info := s.cacheService.GetCacheInfo(ethereum.CallMsg{To: &to, Data: data}, block)
	s.logger.Debug("Call cache info",
		zap.String("to", req.To),
		zap.String("cache_type", string(info.CacheType)))

	s.writeResponse(w, &CallInfoResponse{
		Success:   true,
		CacheType: info.CacheType,
		TTL:       int(info.TTL.Seconds()),
	})
}
