package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.json"), []byte(`{"ok":true}`), 0o644))

	store := NewLocalStore(dir)

	t.Run("Open", func(t *testing.T) {
		rc, err := store.Open(ctx, "meta.json")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, string(data))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing.json")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Put("blob", []byte("payload"))

	t.Run("Open", func(t *testing.T) {
		rc, err := store.Open(ctx, "blob")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CopyIsolation", func(t *testing.T) {
		rc, err := store.Open(ctx, "blob")
		require.NoError(t, err)
		defer rc.Close()

		buf, err := io.ReadAll(rc)
		require.NoError(t, err)
		buf[0] = 'X'

		rc2, err := store.Open(ctx, "blob")
		require.NoError(t, err)
		defer rc2.Close()

		again, err := io.ReadAll(rc2)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(again))
	})
}
