package blobstore

import (
	"context"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// OpenDecoded opens a blob and wraps it with transparent decompression
// selected by file extension:
//
//   - ".zst": zstd
//   - ".lz4": lz4
//   - anything else: passthrough
//
// Closing the returned reader releases both the decoder and the underlying
// blob.
func OpenDecoded(ctx context.Context, bs BlobStore, name string) (io.ReadCloser, error) {
	rc, err := bs.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(rc)
		if err != nil {
			_ = rc.Close()
			return nil, err
		}
		return &decodedReader{r: dec, closers: []func() error{func() error { dec.Close(); return nil }, rc.Close}}, nil

	case strings.HasSuffix(name, ".lz4"):
		return &decodedReader{r: lz4.NewReader(rc), closers: []func() error{rc.Close}}, nil

	default:
		return rc, nil
	}
}

// decodedReader chains a decompressor over an underlying blob reader.
type decodedReader struct {
	r       io.Reader
	closers []func() error
}

func (d *decodedReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decodedReader) Close() error {
	var firstErr error
	for _, close := range d.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
