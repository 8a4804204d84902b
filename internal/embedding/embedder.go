package embedding

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be safe for concurrent use.
//
// The index builder and the search engine must share one model: vectors from
// different models live in different spaces and compare into noise, and
// nothing at runtime can detect the mismatch. The index artifact records the
// model name so the serving side can at least refuse an obvious mix-up.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice is positionally aligned with the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
