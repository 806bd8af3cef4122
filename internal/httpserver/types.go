package httpserver

import (
	"go-reactpad-cache/internal/models"
	"go-reactpad-cache/internal/presale"
	"go-reactpad-cache/internal/txaction"
)

// QueryResponse wraps the state of one read hook
type QueryResponse struct {
	Found     bool        `json:"found"`
	Stale     bool        `json:"stale"`
	FetchedAt int64       `json:"fetched_at"`
	Loading   bool        `json:"loading"`
	Data      interface{} `json:"data"`
	Error     string      `json:"error,omitempty"`
}

// PresaleResponse is a presale with its derived status
type PresaleResponse struct {
	QueryResponse
	View *presale.View `json:"view,omitempty"`
}

// CallInfoRequest asks how a contract call would be cached
type CallInfoRequest struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Block *int64 `json:"block,omitempty"`
}

// CallInfoResponse is the cache classification of a contract call
type CallInfoResponse struct {
	Success   bool             `json:"success"`
	CacheType models.CacheType `json:"cache_type,omitempty"`
	TTL       int              `json:"ttl"`
	Error     string           `json:"error,omitempty"`
}

// AccountRequest sets the connected wallet
type AccountRequest struct {
	Address string `json:"address"`
}

// SessionResponse describes the wallet session
type SessionResponse struct {
	ChainID uint64 `json:"chain_id"`
	Account string `json:"account,omitempty"`
}

// ActionRequest carries the arguments of a write action. Which fields are
// read depends on the action. Amounts are base-10 integer strings in the
// token's smallest unit.
type ActionRequest struct {
	From        string   `json:"from"`
	Presale     string   `json:"presale"`
	Token       string   `json:"token"`
	Spender     string   `json:"spender"`
	Amount      string   `json:"amount"`
	Native      bool     `json:"native"`
	LockID      string   `json:"lock_id"`
	UnlockDate  int64    `json:"unlock_date"`
	Description string   `json:"description"`
	Recipients  []string `json:"recipients"`
	Amounts     []string `json:"amounts"`
	Fee         string   `json:"fee"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply string   `json:"total_supply"`
}

// ActionResponse reports a submitted or polled action
type ActionResponse struct {
	ID string `json:"id"`
	txaction.Status
}
