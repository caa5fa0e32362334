package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		a := []float32{1.0, 2.0, 3.0}
		b := []float32{4.0, 5.0, 6.0}
		assert.Equal(t, float32(32.0), Dot(a, b))
	})

	t.Run("Orthogonal", func(t *testing.T) {
		a := []float32{1.0, 0.0}
		b := []float32{0.0, 1.0}
		assert.Equal(t, float32(0.0), Dot(a, b))
	})
}

func TestSquaredL2(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		a := []float32{1.0, 2.0, 3.0}
		b := []float32{4.0, 6.0, 3.0}
		assert.Equal(t, float32(25.0), SquaredL2(a, b))
	})

	t.Run("Identical", func(t *testing.T) {
		a := []float32{0.5, -0.5, 1.5}
		assert.Equal(t, float32(0.0), SquaredL2(a, a))
	})
}

func TestCosine(t *testing.T) {
	t.Run("Parallel", func(t *testing.T) {
		a := []float32{1.0, 2.0, 3.0}
		b := []float32{2.0, 4.0, 6.0}
		assert.InDelta(t, 1.0, Cosine(a, b), 1e-6)
	})

	t.Run("Orthogonal", func(t *testing.T) {
		a := []float32{1.0, 0.0}
		b := []float32{0.0, 1.0}
		assert.InDelta(t, 0.0, Cosine(a, b), 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		a := []float32{1.0, 0.0}
		b := []float32{-1.0, 0.0}
		assert.InDelta(t, -1.0, Cosine(a, b), 1e-6)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		a := []float32{0.0, 0.0}
		b := []float32{1.0, 1.0}
		assert.Equal(t, float32(0.0), Cosine(a, b))
	})
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3.0, 4.0}
		require.True(t, NormalizeL2InPlace(v))
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("ZeroNorm", func(t *testing.T) {
		v := []float32{0.0, 0.0}
		assert.False(t, NormalizeL2InPlace(v))
	})

	t.Run("Copy", func(t *testing.T) {
		src := []float32{3.0, 4.0}
		dst, ok := NormalizeL2Copy(src)
		require.True(t, ok)
		assert.Equal(t, []float32{3.0, 4.0}, src)
		assert.InDelta(t, 1.0, Dot(dst, dst), 1e-6)
	})

	t.Run("Empty", func(t *testing.T) {
		_, ok := NormalizeL2Copy(nil)
		assert.False(t, ok)
	})
}
