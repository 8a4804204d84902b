package embedding

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

// OpenAIConfig configures the embedding client. Any OpenAI-compatible
// endpoint works, including local servers that ignore the API key.
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAIEmbedder implements Embedder against an OpenAI-compatible API.
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
	model    string
	logger   zerolog.Logger
}

// NewOpenAIEmbedder creates the embedding client. Failure here is the
// "model failed to load" condition: callers should surface the message and
// keep the rest of the application alive.
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model name is required")
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		// langchaingo rejects empty tokens even for local endpoints
		apiKey = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client for %q: %w", cfg.Model, err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("failed to wrap embedding client: %w", err)
	}

	return &OpenAIEmbedder{
		embedder: embedder,
		model:    cfg.Model,
		logger:   logger.WithComponent("embedder"),
	}, nil
}

// Model returns the configured model name.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// EmbedText generates a vector embedding for a single text string.
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error().Err(err).Int("length", len(text)).Msg("Failed to generate embedding")
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding endpoint returned no vectors")
	}
	return vectors[0], nil
}

// EmbedTexts generates embeddings for multiple texts in a batch.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug().Int("count", len(texts)).Msg("Generating embeddings")

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error().Err(err).Int("count", len(texts)).Msg("Failed to generate embeddings")
		return nil, err
	}
	return vectors, nil
}
