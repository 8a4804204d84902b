package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/meetp/facultyfinder/internal/index"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	t.Run("record not found", func(t *testing.T) {
		w := handleError(t, apperrors.ErrRecordNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "RES_001")
	})

	t.Run("validation failure", func(t *testing.T) {
		w := handleError(t, fmt.Errorf("%w: top_k must be positive", apperrors.ErrValidationFailed))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VAL_001")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := handleError(t, apperrors.ErrDuplicateEmail)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "RES_002")
	})

	t.Run("missing index artifact is 503 not ready", func(t *testing.T) {
		w := handleError(t, fmt.Errorf("%w: %v", apperrors.ErrIndexNotReady, index.ErrArtifactMissing))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "SRCH_001")
		assert.Contains(t, w.Body.String(), "run the ingest and embed commands first")
	})

	t.Run("stale index", func(t *testing.T) {
		w := handleError(t, fmt.Errorf("%w: fingerprint mismatch", apperrors.ErrIndexStale))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "rerun the embed command")
	})

	t.Run("embedder unavailable", func(t *testing.T) {
		w := handleError(t, fmt.Errorf("%w: connection refused", apperrors.ErrEmbedderUnavailable))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "embedding model is unavailable")
	})

	t.Run("unknown errors fall back to 500", func(t *testing.T) {
		w := handleError(t, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "SRV_001")
	})
}
