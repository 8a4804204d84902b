package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetp/facultyfinder/internal/app/models/dto"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
)

// HandleAPIError maps service-layer errors onto HTTP responses. Controllers
// route every non-binding error through here so status codes and messages
// stay consistent across endpoints.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Faculty record not found")))

	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())))

	case errors.Is(err, apperrors.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Another record already holds this email")))

	case errors.Is(err, apperrors.ErrIndexNotReady):
		c.JSON(http.StatusServiceUnavailable, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeIndexNotReady,
				"Semantic search is not ready: run the ingest and embed commands first")))

	case errors.Is(err, apperrors.ErrIndexStale):
		c.JSON(http.StatusServiceUnavailable, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeIndexNotReady,
				"The embedding index no longer matches the faculty table: rerun the embed command")))

	case errors.Is(err, apperrors.ErrEmbedderUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeIndexNotReady,
				"The embedding model is unavailable: check the embedding endpoint configuration")))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewAPIError(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
