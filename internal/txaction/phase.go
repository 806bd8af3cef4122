package txaction

import (
	"github.com/ethereum/go-ethereum/common"
)

// Phase is the progress of one write action
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	// PhasePending waits for the wallet to sign and broadcast
	PhasePending Phase = "pending"
	// PhaseConfirming waits for the transaction to be mined
	PhaseConfirming Phase = "confirming"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

// IsSettled reports whether the phase is final
func (p Phase) IsSettled() bool {
	return p == PhaseSuccess || p == PhaseError
}

// Status is a snapshot of an action
type Status struct {
	Action      string      `json:"action"`
	Phase       Phase       `json:"phase"`
	TxHash      common.Hash `json:"tx_hash,omitempty"`
	BlockNumber uint64      `json:"block_number,omitempty"`
	Message     string      `json:"message,omitempty"`
	Err         error       `json:"-"`
}
