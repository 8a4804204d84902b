package index

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/embedding"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

// Builder turns an id-ordered table snapshot into an embedding index.
// A build is a pure batch operation: one changed record means rebuilding the
// whole index, since vectors are keyed by position, not id.
type Builder struct {
	embedder embedding.Embedder
	model    string
	logger   zerolog.Logger
}

// NewBuilder creates a builder. model is recorded in the artifact so serving
// can detect an index built with a different embedding model.
func NewBuilder(embedder embedding.Embedder, model string) *Builder {
	return &Builder{
		embedder: embedder,
		model:    model,
		logger:   logger.WithComponent("index-builder"),
	}
}

// Build embeds every record's search text and assembles the artifact.
func (b *Builder) Build(ctx context.Context, records []*models.FacultyMember) (*Artifact, error) {
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = SearchText(rec)
	}

	b.logger.Info().Int("records", len(records)).Str("model", b.model).Msg("Embedding faculty records")

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed faculty records: %w", err)
	}

	// Positional alignment is the index's only link back to the records;
	// refuse to persist anything that breaks it.
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d records", len(vectors), len(records))
	}

	dimension := 0
	for i, v := range vectors {
		if i == 0 {
			dimension = len(v)
			continue
		}
		if len(v) != dimension {
			return nil, fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dimension)
		}
	}

	return &Artifact{
		Model:       b.model,
		Dimension:   dimension,
		Count:       len(records),
		Fingerprint: Fingerprint(records),
		BuiltAt:     time.Now().UTC(),
		Vectors:     vectors,
	}, nil
}
