package httpserver

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/gorilla/mux"

	"go-reactpad-cache/internal/txaction"
)

func parseAmount(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: must be a base-10 integer", field)
	}
	return v, nil
}

// build prepares the request for action from the submitted arguments
func (s *Server) build(action string, req ActionRequest) (txaction.Request, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return txaction.Request{}, err
	}
	fee, err := parseAmount("fee", req.Fee)
	if err != nil {
		return txaction.Request{}, err
	}

	b := s.builder
	switch action {
	case "approve":
		return b.Approve(req.From, req.Token, req.Spender, amount)
	case "contribute":
		return b.Contribute(req.From, req.Presale, amount, req.Native)
	case "claim":
		return b.Claim(req.From, req.Presale)
	case "refund":
		return b.Refund(req.From, req.Presale)
	case "finalize":
		return b.Finalize(req.From, req.Presale)
	case "cancel":
		return b.Cancel(req.From, req.Presale)
	case "lock":
		return b.Lock(req.From, req.Token, amount, req.UnlockDate, req.Description, fee)
	case "withdraw_lock":
		return b.WithdrawLock(req.From, req.LockID)
	case "airdrop":
		amounts := make([]*big.Int, len(req.Amounts))
		for i, a := range req.Amounts {
			if amounts[i], err = parseAmount("amounts", a); err != nil {
				return txaction.Request{}, err
			}
		}
		return b.Airdrop(req.From, req.Token, req.Recipients, amounts, fee)
	case "stake":
		return b.Stake(req.From, amount)
	case "create_token":
		supply, err := parseAmount("total_supply", req.TotalSupply)
		if err != nil {
			return txaction.Request{}, err
		}
		return b.CreateToken(req.From, req.Name, req.Symbol, req.Decimals, supply, fee)
	default:
		return txaction.Request{}, errUnknownAction
	}
}

var errUnknownAction = errors.New("unknown action")

// handleSubmitAction validates and submits a write action. The response
// carries the id to poll with GET /actions/{id}.
func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	action := mux.Vars(r)["action"]

	var req ActionRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.From == "" {
		req.From = s.session.Account()
	}
	if req.From == "" {
		s.writeErrorResponse(w, "No wallet connected", http.StatusConflict)
		return
	}

	txReq, err := s.build(action, req)
	if errors.Is(err, errUnknownAction) {
		s.writeErrorResponse(w, "Unknown action: "+action, http.StatusNotFound)
		return
	}
	if err == nil {
		var id string
		id, err = s.actions.Submit(txReq)
		if err == nil {
			status, _ := s.actions.Get(id)
			s.writeStatus(w, http.StatusAccepted, ActionResponse{ID: id, Status: status})
			return
		}
	}
	s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
}

func (s *Server) handleGetAction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	status, err := s.actions.Get(id)
	if err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeResponse(w, ActionResponse{ID: id, Status: status})
}

// handleForgetAction drops a settled action
func (s *Server) handleForgetAction(w http.ResponseWriter, r *http.Request) {
	s.actions.Forget(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
