package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		f, err := New([][]float32{
			{1.0, 2.0, 3.0},
			{4.0, 5.0, 6.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, f.Len())
		assert.Equal(t, 3, f.Dimension())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := New([][]float32{
			{1.0, 2.0, 3.0},
			{4.0, 5.0},
		})
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 3, dm.Expected)
		assert.Equal(t, 2, dm.Actual)
	})
}

func TestNewFromFlat(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		f, err := NewFromFlat(2, []float32{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, 3, f.Len())
		assert.Equal(t, 2, f.Dimension())
	})

	t.Run("RaggedBuffer", func(t *testing.T) {
		_, err := NewFromFlat(4, []float32{1, 2, 3, 4, 5})
		assert.Error(t, err)
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := NewFromFlat(0, nil)
		assert.Error(t, err)
	})
}

func TestFlatSearch(t *testing.T) {
	f, err := New([][]float32{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
		{7.0, 8.0, 9.0},
	})
	require.NoError(t, err)

	t.Run("TopK", func(t *testing.T) {
		results, err := f.Search([]float32{0.0, 0.0, 0.0}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Row)
		assert.Equal(t, 1, results[1].Row)
		assert.Less(t, results[0].Distance, results[1].Distance)
	})

	t.Run("KLargerThanIndex", func(t *testing.T) {
		results, err := f.Search([]float32{0.0, 0.0, 0.0}, 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("ExactMatch", func(t *testing.T) {
		results, err := f.Search([]float32{4.0, 5.0, 6.0}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].Row)
		assert.Equal(t, float32(0.0), results[0].Distance)
	})

	t.Run("InvalidK", func(t *testing.T) {
		_, err := f.Search([]float32{0.0, 0.0, 0.0}, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("QueryDimensionMismatch", func(t *testing.T) {
		_, err := f.Search([]float32{0.0, 0.0}, 1)
		var dm *ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})
}

func TestReconstruct(t *testing.T) {
	f, err := New([][]float32{
		{1.0, 2.0},
		{3.0, 4.0},
	})
	require.NoError(t, err)

	t.Run("Basic", func(t *testing.T) {
		v, err := f.Reconstruct(1)
		require.NoError(t, err)
		assert.Equal(t, []float32{3.0, 4.0}, v)
	})

	t.Run("CopyIsolation", func(t *testing.T) {
		v, err := f.Reconstruct(0)
		require.NoError(t, err)
		v[0] = 99.0

		again, err := f.Reconstruct(0)
		require.NoError(t, err)
		assert.Equal(t, []float32{1.0, 2.0}, again)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := f.Reconstruct(2)
		var rnf *ErrRowNotFound
		require.ErrorAs(t, err, &rnf)
		assert.Equal(t, 2, rnf.Row)

		_, err = f.Reconstruct(-1)
		assert.ErrorAs(t, err, &rnf)
	})
}

func TestRestrictTo(t *testing.T) {
	f, err := New([][]float32{
		{0.0, 0.0},
		{1.0, 0.0},
		{2.0, 0.0},
		{3.0, 0.0},
	})
	require.NoError(t, err)

	t.Run("SearchKeepsOriginalRows", func(t *testing.T) {
		sub, err := f.RestrictTo([]int{1, 3})
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Len())

		results, err := sub.Search([]float32{3.1, 0.0}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 3, results[0].Row)
		assert.Equal(t, 1, results[1].Row)
	})

	t.Run("ExcludedRowsNeverReturned", func(t *testing.T) {
		sub, err := f.RestrictTo([]int{0, 2})
		require.NoError(t, err)

		results, err := sub.Search([]float32{3.0, 0.0}, 4)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.True(t, sub.Contains(r.Row))
		}
	})

	t.Run("Duplicates", func(t *testing.T) {
		sub, err := f.RestrictTo([]int{1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, sub.Len())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := f.RestrictTo([]int{0, 4})
		var rnf *ErrRowNotFound
		require.ErrorAs(t, err, &rnf)
		assert.Equal(t, 4, rnf.Row)
	})

	t.Run("EmptySubsetSearch", func(t *testing.T) {
		sub, err := f.RestrictTo(nil)
		require.NoError(t, err)
		_, err = sub.Search([]float32{0.0, 0.0}, 1)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})
}
