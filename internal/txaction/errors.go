package txaction

import (
	"errors"
	"fmt"
)

var (
	// ErrReverted means the transaction was mined with a failed status
	ErrReverted = errors.New("transaction reverted")
	// ErrAlreadyRunning is returned when Run is called on an unsettled action
	ErrAlreadyRunning = errors.New("action already running")
)

// ValidationError rejects malformed input before anything is sent
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
