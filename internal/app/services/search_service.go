package services

import (
	"context"
	"fmt"

	"github.com/meetp/facultyfinder/internal/app/models/dto"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
	"github.com/meetp/facultyfinder/internal/search"
)

// SearchService answers semantic queries against the embedding index.
type SearchService interface {
	Search(ctx context.Context, query string, topK int) ([]dto.ScoredFaculty, error)
	// Ready reports whether the engine can serve queries; the returned
	// error says why not.
	Ready() error
}

// searchServiceImpl implements the SearchService interface. The engine is
// process-wide read-only state built once at startup; when index artifacts
// are missing or stale the service stays constructible and reports the
// condition on every call instead of crashing the API.
type searchServiceImpl struct {
	engine      *search.Engine
	unavailable error
}

// NewSearchService creates a search service around a ready engine.
func NewSearchService(engine *search.Engine) SearchService {
	return &searchServiceImpl{engine: engine}
}

// NewUnavailableSearchService creates a search service that rejects every
// query with the given reason.
func NewUnavailableSearchService(reason error) SearchService {
	if reason == nil {
		reason = apperrors.ErrIndexNotReady
	}
	return &searchServiceImpl{unavailable: reason}
}

// Ready reports whether semantic search can serve queries.
func (s *searchServiceImpl) Ready() error {
	return s.unavailable
}

// Search runs one semantic query and shapes the hits for the API.
func (s *searchServiceImpl) Search(ctx context.Context, query string, topK int) ([]dto.ScoredFaculty, error) {
	if s.unavailable != nil {
		return nil, s.unavailable
	}

	hits, err := s.engine.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}

	results := make([]dto.ScoredFaculty, 0, len(hits))
	for _, hit := range hits {
		rec := hit.Record
		results = append(results, dto.ScoredFaculty{
			Name:        rec.Name,
			Designation: rec.Designation,
			Email:       rec.Email,
			Phone:       rec.Phone,
			Education:   rec.Education,
			Interests:   rec.BioInterest,
			Image:       rec.ImageURL,
			Link:        rec.ProfileLink,
			Score:       hit.Score,
		})
	}
	return results, nil
}
