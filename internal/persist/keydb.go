package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"go-reactpad-cache/internal/interfaces"
)

var _ interfaces.Persister = (*KeyDBPersister)(nil)

// KeyDBPersister keeps the serialized store under one KeyDB key
type KeyDBPersister struct {
	client       interfaces.KeyDbClient
	key          string
	ttl          time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewKeyDBPersister creates a persister writing to key. A zero ttl keeps the entry forever.
func NewKeyDBPersister(client interfaces.KeyDbClient, key string, ttl, readTimeout, writeTimeout time.Duration) *KeyDBPersister {
	return &KeyDBPersister{
		client:       client,
		key:          key,
		ttl:          ttl,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (p *KeyDBPersister) Load(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.readTimeout)
	defer cancel()

	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state from keydb: %w", err)
	}
	return data, nil
}

func (p *KeyDBPersister) Save(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.client.Set(ctx, p.key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set state in keydb: %w", err)
	}
	return nil
}

// Close is a no-op; the client is shared with the call cache and closed by its owner
func (p *KeyDBPersister) Close() error {
	return nil
}
