package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical direction", func(t *testing.T) {
		assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	})

	t.Run("orthogonal", func(t *testing.T) {
		assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite", func(t *testing.T) {
		assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})

	t.Run("dimension mismatch scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	})
}
