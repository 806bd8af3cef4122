package interfaces

import "context"

// Persister stores the serialized cache store under one named entry
type Persister interface {
	// Load returns nil, nil when nothing was saved yet
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}
