package mock

import (
	"context"
	"hash/fnv"
)

// Embedder is a deterministic test double for embedding.Embedder.
// Vectors registered via Register take priority; unknown texts fall back to
// a hash-derived unit vector so the same text always maps to the same point.
type Embedder struct {
	// Dim is the dimensionality of fallback vectors. Defaults to 8.
	Dim int

	// Err, if set, is returned by every call.
	Err error

	vectors map[string][]float32
}

// NewEmbedder creates a mock embedder.
func NewEmbedder() *Embedder {
	return &Embedder{Dim: 8, vectors: make(map[string][]float32)}
}

// Register pins an exact vector for a text.
func (m *Embedder) Register(text string, vector []float32) *Embedder {
	m.vectors[text] = vector
	return m
}

// EmbedText returns the registered or hash-derived vector for text.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return deterministicVector(text, m.Dim), nil
}

// EmbedTexts returns one vector per input text, in order.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// deterministicVector maps text to a stable pseudo-random vector via FNV.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000)/500.0 - 1.0
	}
	return vector
}
