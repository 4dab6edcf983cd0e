package store

import (
	"context"
	"os"
	"path/filepath"
)

// FSBackend reads challenge data from a local directory tree, rooted
// at Root, laid out per RelativePath.
type FSBackend struct {
	Root string
}

func NewFSBackend(root string) *FSBackend {
	return &FSBackend{Root: root}
}

func (b *FSBackend) Get(ctx context.Context, path string) ([]byte, error) {
	full := filepath.Join(b.Root, path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, wrapError("read", path, err)
	}
	return data, nil
}
