package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func magnitude(v []float32) float32 {
	var sum float32
	for _, val := range v {
		sum += val * val
	}
	return sum
}

func TestNormalize(t *testing.T) {
	t.Run("unit magnitude", func(t *testing.T) {
		v := Normalize([]float32{1, 2, 2})
		assert.InDelta(t, 1.0, magnitude(v), 1e-6)
		assert.InDelta(t, 1.0/3.0, v[0], 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := Normalize([]float32{0, 0, 0})
		assert.True(t, IsZero(v))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		in := []float32{3, 4}
		Normalize(in)
		assert.Equal(t, []float32{3, 4}, in)
	})
}

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.6, 0.8}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("zero vector yields exactly zero", func(t *testing.T) {
		zero := Zero(3)
		require.Equal(t, float32(0), Cosine([]float32{1, 2, 3}, zero))
		require.Equal(t, float32(0), Cosine(zero, zero))
	})

	t.Run("dimension mismatch yields zero", func(t *testing.T) {
		assert.Equal(t, float32(0), Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("bounded despite drift", func(t *testing.T) {
		a := []float32{0.70710677, 0.70710677}
		sim := Cosine(a, a)
		assert.LessOrEqual(t, sim, float32(1))
		assert.GreaterOrEqual(t, sim, float32(-1))
	})
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(Zero(768)))
	assert.True(t, IsZero(nil))
	assert.False(t, IsZero([]float32{0, 0, 1e-9}))
}
