// Package persist keeps the store snapshot in durable storage across restarts.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-reactpad-cache/internal/store"
)

// SchemaVersion is bumped whenever the persisted layout changes incompatibly
const SchemaVersion = 2

var ErrVersionMismatch = errors.New("persisted state has an unsupported version")

// document records the chain the snapshot was read from; store values are
// not chain-qualified.
type document struct {
	Version int            `json:"version"`
	ChainID uint64         `json:"chain_id"`
	State   store.Snapshot `json:"state"`
}

// Encode serializes a snapshot of chainID. Big integers are written as tagged
// strings by models.BigInt, so values beyond 2^53 survive the round trip.
func Encode(chainID uint64, snap store.Snapshot) ([]byte, error) {
	data, err := json.Marshal(document{Version: SchemaVersion, ChainID: chainID, State: snap})
	if err != nil {
		return nil, fmt.Errorf("failed to encode store snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a document written by Encode and returns the snapshot with
// the chain it belongs to.
func Decode(data []byte) (store.Snapshot, uint64, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return store.Snapshot{}, 0, fmt.Errorf("failed to decode store snapshot: %w", err)
	}
	if doc.Version != SchemaVersion {
		return store.Snapshot{}, 0, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, doc.Version, SchemaVersion)
	}
	return doc.State, doc.ChainID, nil
}
