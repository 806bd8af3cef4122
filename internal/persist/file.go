package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go-reactpad-cache/internal/interfaces"
)

var _ interfaces.Persister = (*FilePersister)(nil)

// FilePersister keeps the serialized store in a single local file
type FilePersister struct {
	mu       sync.RWMutex
	filePath string
}

// FilePath returns the location of the named entry inside dir
func FilePath(dir, storageKey string) string {
	return filepath.Join(dir, storageKey+".json")
}

func NewFilePersister(filePath string) *FilePersister {
	return &FilePersister{filePath: filePath}
}

// Load reads the persisted entry; a missing file is not an error
func (p *FilePersister) Load(ctx context.Context) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, err := os.ReadFile(p.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return data, nil
}

// Save replaces the persisted entry atomically
func (p *FilePersister) Save(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmpFile := p.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpFile, p.filePath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}

func (p *FilePersister) Close() error {
	return nil
}
