package presale

import (
	"time"

	"go-reactpad-cache/internal/models"
)

// Gates says which actions the UI should offer. The contract enforces the
// real rules; these only avoid offering actions that would certainly revert.
type Gates struct {
	Contribute bool `json:"contribute"`
	Claim      bool `json:"claim"`
	Refund     bool `json:"refund"`
	Finalize   bool `json:"finalize"`
	Cancel     bool `json:"cancel"`
}

// ComputeGates derives the action gates for account at now. An empty
// account gets no owner actions.
func ComputeGates(now time.Time, info models.PresaleInfo, account string) Gates {
	status := DeriveStatus(now, info)
	isOwner := account != "" && models.NormalizeAddress(account) == models.NormalizeAddress(info.Owner)

	return Gates{
		Contribute: status == StatusLive,
		Claim:      status == StatusFinalized,
		Refund:     status == StatusCancelled,
		Finalize:   isOwner && status == StatusEnded,
		Cancel:     isOwner && status == StatusEnded,
	}
}

// View is the derived presentation of a presale
type View struct {
	Status          Status `json:"status"`
	CountdownTarget int64  `json:"countdown_target,omitempty"`
	SecondsLeft     int64  `json:"seconds_left,omitempty"`
	ProgressBps     int64  `json:"progress_bps"`
	SoftCapReached  bool   `json:"soft_cap_reached"`
	Gates           Gates  `json:"gates"`
}

// Derive computes the full view at now
func Derive(now time.Time, info models.PresaleInfo, account string) View {
	view := View{
		Status:         DeriveStatus(now, info),
		ProgressBps:    Progress(info),
		SoftCapReached: SoftCapReached(info),
		Gates:          ComputeGates(now, info, account),
	}
	if target, remaining, ok := Countdown(now, info); ok {
		view.CountdownTarget = target.Unix()
		view.SecondsLeft = int64(remaining / time.Second)
	}
	return view
}
