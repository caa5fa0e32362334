package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDecoded(t *testing.T) {
	ctx := context.Background()
	payload := []byte("embedding matrix bytes")

	t.Run("Passthrough", func(t *testing.T) {
		store := NewMemoryStore()
		store.Put("matrix.bin", payload)

		rc, err := OpenDecoded(ctx, store, "matrix.bin")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("Zstd", func(t *testing.T) {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = enc.Write(payload)
		require.NoError(t, err)
		require.NoError(t, enc.Close())

		store := NewMemoryStore()
		store.Put("matrix.bin.zst", buf.Bytes())

		rc, err := OpenDecoded(ctx, store, "matrix.bin.zst")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("LZ4", func(t *testing.T) {
		var buf bytes.Buffer
		enc := lz4.NewWriter(&buf)
		_, err := enc.Write(payload)
		require.NoError(t, err)
		require.NoError(t, enc.Close())

		store := NewMemoryStore()
		store.Put("matrix.bin.lz4", buf.Bytes())

		rc, err := OpenDecoded(ctx, store, "matrix.bin.lz4")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("NotFound", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := OpenDecoded(ctx, store, "missing.zst")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
