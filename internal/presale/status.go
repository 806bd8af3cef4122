// Package presale derives the lifecycle view of a presale from its on-chain
// fields. Nothing here changes presale state; every value is recomputed from
// a fresh read.
package presale

import (
	"math/big"
	"time"

	"go-reactpad-cache/internal/models"
)

// Status is the derived lifecycle label
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusEnded     Status = "ended"
	StatusFinalized Status = "finalized"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether the presale was finalized or cancelled
func (s Status) IsTerminal() bool {
	return s == StatusFinalized || s == StatusCancelled
}

// DeriveStatus labels a presale at now. The finalize and cancel flags win
// over the time window.
func DeriveStatus(now time.Time, info models.PresaleInfo) Status {
	switch {
	case info.ClaimEnabled:
		return StatusFinalized
	case info.RefundsEnabled:
		return StatusCancelled
	}

	ts := now.Unix()
	switch {
	case ts < info.StartTime:
		return StatusUpcoming
	case ts < info.EndTime:
		return StatusLive
	default:
		return StatusEnded
	}
}

// Countdown returns the moment the current phase ends and the time left.
// ok is false when no countdown applies.
func Countdown(now time.Time, info models.PresaleInfo) (target time.Time, remaining time.Duration, ok bool) {
	switch DeriveStatus(now, info) {
	case StatusUpcoming:
		target = time.Unix(info.StartTime, 0)
	case StatusLive:
		target = time.Unix(info.EndTime, 0)
	default:
		return time.Time{}, 0, false
	}
	return target, target.Sub(now), true
}

// Progress returns total raised over hard cap in basis points, capped at 10000
func Progress(info models.PresaleInfo) int64 {
	if info.HardCap.Int == nil || info.HardCap.Sign() <= 0 || info.TotalRaised.Int == nil {
		return 0
	}
	bps := new(big.Int).Mul(info.TotalRaised.Int, big.NewInt(10000))
	bps.Quo(bps, info.HardCap.Int)
	if bps.Cmp(big.NewInt(10000)) > 0 {
		return 10000
	}
	return bps.Int64()
}

// SoftCapReached reports whether total raised met the soft cap
func SoftCapReached(info models.PresaleInfo) bool {
	if info.SoftCap.Int == nil {
		return true
	}
	raised := info.TotalRaised.Int
	if raised == nil {
		raised = new(big.Int)
	}
	return raised.Cmp(info.SoftCap.Int) >= 0
}
