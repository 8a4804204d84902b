package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
)

func TestUnavailableSearchService(t *testing.T) {
	t.Run("default reason", func(t *testing.T) {
		service := NewUnavailableSearchService(nil)

		require.Error(t, service.Ready())
		_, err := service.Search(context.Background(), "graph theory", 5)
		assert.ErrorIs(t, err, apperrors.ErrIndexNotReady)
	})

	t.Run("specific reason", func(t *testing.T) {
		service := NewUnavailableSearchService(apperrors.ErrIndexStale)

		assert.ErrorIs(t, service.Ready(), apperrors.ErrIndexStale)
		_, err := service.Search(context.Background(), "graph theory", 5)
		assert.ErrorIs(t, err, apperrors.ErrIndexStale)
	})
}
