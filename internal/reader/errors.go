package reader

import (
	"errors"
	"fmt"

	"go-reactpad-cache/internal/models"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNotDeployed means the registry has no address for the contract on the active chain
	ErrNotDeployed = errors.New("contract not deployed on this chain")
)

// FetchError is returned by every read path. Key is the normalized address or
// lock ID the read was for, empty for singleton resources.
type FetchError struct {
	Resource models.ResourceKind
	Key      string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("fetch %s %s: %v", e.Resource, e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func fetchError(resource models.ResourceKind, key string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Resource: resource, Key: key, Err: err}
}
