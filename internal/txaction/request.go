package txaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"go-reactpad-cache/internal/models"
)

// Request is a prepared write: the transaction and the cached state it
// invalidates once confirmed.
type Request struct {
	Action      string
	Tx          models.TxRequest
	Invalidates []models.Invalidation
}

// Validate checks the transaction shape. Builders already validated the
// arguments; this guards hand-built requests.
func (r Request) Validate() error {
	if r.Action == "" {
		return invalid("action", "must be set")
	}
	if r.Tx.From == (common.Address{}) {
		return invalid("from", "must be a non-zero address")
	}
	if r.Tx.To == (common.Address{}) {
		return invalid("to", "must be a non-zero address")
	}
	if len(r.Tx.Data) < 4 {
		return invalid("data", "must contain a method selector")
	}
	if r.Tx.Value != nil && r.Tx.Value.Sign() < 0 {
		return invalid("value", "must not be negative")
	}
	return nil
}

func value(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
