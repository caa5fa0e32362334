package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/blobstore"
)

func encodeMatrix(t *testing.T, vectors [][]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, vectors))
	return buf.Bytes()
}

func testMetadata() metadataFile {
	return metadataFile{
		ProductNames:  []string{"Linen Shirt", "Wool Sweater"},
		ProductImages: []string{"img/linen.jpg", "img/wool.jpg"},
		Ratings:       []float64{4.5, 4.0},
		ReviewTitles:  [][]string{{"Great"}, {"Warm"}},
		ReviewTexts:   [][]string{{"Love it"}, {"Very cozy"}},
		Descriptions:  []string{"light shirt", "warm sweater"},
		Features:      []string{"linen", "wool"},
	}
}

func putMetadata(t *testing.T, store *blobstore.MemoryStore, name string, meta metadataFile) {
	t.Helper()
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	store.Put(name, data)
}

func TestMatrixRoundTrip(t *testing.T) {
	vectors := [][]float32{
		{1.0, 2.0, 3.0},
		{-4.5, 0.0, 6.25},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, vectors))

	mat, err := ReadMatrix(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, mat.Dim)
	assert.Equal(t, 2, mat.Rows)
	assert.Equal(t, []float32{1.0, 2.0, 3.0, -4.5, 0.0, 6.25}, mat.Data)
}

func TestReadMatrixErrors(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		_, err := ReadMatrix(bytes.NewReader([]byte("XXXX\x01")))
		assert.ErrorContains(t, err, "magic")
	})

	t.Run("Truncated", func(t *testing.T) {
		data := encodeMatrix(t, [][]float32{{1, 2, 3}})
		_, err := ReadMatrix(bytes.NewReader(data[:len(data)-4]))
		assert.ErrorContains(t, err, "truncated")
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Basic", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putMetadata(t, store, "metadata.json", testMetadata())
		store.Put("product_embeddings.bin", encodeMatrix(t, [][]float32{{1, 0}, {0, 1}}))
		store.Put("combined_embeddings.bin", encodeMatrix(t, [][]float32{{1, 1, 0}, {0, 1, 1}}))

		snap, err := Load(ctx, store, DefaultArtifactNames)
		require.NoError(t, err)

		assert.Equal(t, 2, snap.Store.Len())
		assert.Equal(t, 2, snap.ProductIndex.Dimension())
		assert.Equal(t, 3, snap.CombinedIndex.Dimension())
		assert.Equal(t, 2, snap.ProductIndex.Len())
		assert.Equal(t, 2, snap.CombinedIndex.Len())

		stats := snap.Stats()
		assert.Equal(t, 2, stats.TotalProducts)
		assert.Equal(t, 2, stats.IndexDimension)
		assert.Equal(t, 3, stats.CombinedIndexDimension)
	})

	t.Run("RowCountMismatch", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putMetadata(t, store, "metadata.json", testMetadata())
		store.Put("product_embeddings.bin", encodeMatrix(t, [][]float32{{1, 0}}))
		store.Put("combined_embeddings.bin", encodeMatrix(t, [][]float32{{1, 1}, {0, 1}}))

		_, err := Load(ctx, store, DefaultArtifactNames)
		assert.ErrorContains(t, err, "rows")
	})

	t.Run("RaggedMetadata", func(t *testing.T) {
		meta := testMetadata()
		meta.Ratings = meta.Ratings[:1]

		store := blobstore.NewMemoryStore()
		putMetadata(t, store, "metadata.json", meta)
		store.Put("product_embeddings.bin", encodeMatrix(t, [][]float32{{1, 0}, {0, 1}}))
		store.Put("combined_embeddings.bin", encodeMatrix(t, [][]float32{{1, 1}, {0, 1}}))

		_, err := Load(ctx, store, DefaultArtifactNames)
		assert.ErrorContains(t, err, "ratings")
	})

	t.Run("MissingArtifact", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		putMetadata(t, store, "metadata.json", testMetadata())

		_, err := Load(ctx, store, DefaultArtifactNames)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
