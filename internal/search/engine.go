package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/meetp/facultyfinder/internal/app/models"
	"github.com/meetp/facultyfinder/internal/embedding"
	"github.com/meetp/facultyfinder/internal/index"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

// Result is one semantic search hit. Score is on a 0-100 scale rounded to
// one decimal place; Raw is the underlying cosine similarity.
type Result struct {
	Record *models.FacultyMember
	Score  float64
	Raw    float64
}

// Engine answers semantic queries over an in-memory copy of the faculty
// table and its embedding index. All fields are set once at construction and
// never mutated, so concurrent Search calls need no locking.
type Engine struct {
	records   []*models.FacultyMember
	vectors   [][]float32
	embedder  embedding.Embedder
	threshold float64
	logger    zerolog.Logger
}

// NewEngine validates that the artifact still describes the given snapshot
// and builds a ready-to-serve engine. A count or fingerprint mismatch means
// the table changed after the index was built; serving would silently return
// scores for the wrong people, so it fails with ErrIndexStale instead.
func NewEngine(records []*models.FacultyMember, artifact *index.Artifact, embedder embedding.Embedder, threshold float64) (*Engine, error) {
	if artifact.Count != len(records) {
		return nil, fmt.Errorf("%w: index has %d entries, table has %d rows",
			apperrors.ErrIndexStale, artifact.Count, len(records))
	}
	if fp := index.Fingerprint(records); fp != artifact.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint mismatch, rebuild the index",
			apperrors.ErrIndexStale)
	}

	return &Engine{
		records:   records,
		vectors:   artifact.Vectors,
		embedder:  embedder,
		threshold: threshold,
		logger:    logger.WithComponent("search-engine"),
	}, nil
}

// Size returns the number of indexed records.
func (e *Engine) Size() int {
	return len(e.records)
}

// Search embeds the query, ranks every indexed record by cosine similarity,
// and returns at most topK results scoring strictly above the threshold,
// best first. Equal scores rank by ascending table order. An empty query
// returns an empty result, not an error.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return []Result{}, nil
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: top_k must be positive", apperrors.ErrValidationFailed)
	}

	queryVector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error().Err(err).Str("query", query).Msg("Failed to embed query")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmbedderUnavailable, err)
	}

	similarities := make([]float64, len(e.vectors))
	for i, v := range e.vectors {
		similarities[i] = cosineSimilarity(queryVector, v)
	}

	order := make([]int, len(similarities))
	for i := range order {
		order[i] = i
	}
	// Stable sort on a pre-ordered slice keeps ties in ascending table
	// order. A plain argsort-then-reverse would flip ties instead.
	sort.SliceStable(order, func(i, j int) bool {
		return similarities[order[i]] > similarities[order[j]]
	})

	results := make([]Result, 0, topK)
	for _, idx := range order {
		if len(results) == topK {
			break
		}
		raw := similarities[idx]
		if raw <= e.threshold {
			// Everything after this scores no higher
			break
		}
		results = append(results, Result{
			Record: e.records[idx],
			Score:  math.Round(raw*1000) / 10,
			Raw:    raw,
		})
	}

	e.logger.Debug().Str("query", query).Int("hits", len(results)).Msg("Semantic search complete")
	return results, nil
}
