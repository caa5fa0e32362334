package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements BlobStore using the local file system.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	// os.Open returns an error satisfying errors.Is(err, ErrNotFound) for
	// missing files.
	return os.Open(filepath.Join(s.root, name))
}
