package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading immutable data artifacts.
type BlobStore interface {
	// Open opens a blob for reading. The caller owns the returned reader
	// and must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
