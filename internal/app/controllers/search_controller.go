package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetp/facultyfinder/internal/app/models/dto"
	"github.com/meetp/facultyfinder/internal/app/services"
	"github.com/meetp/facultyfinder/internal/middleware"
)

// SearchController handles the semantic search endpoint
type SearchController struct {
	searchService services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// SemanticSearch ranks faculty by embedding similarity to a free-text query.
// @Summary Semantic faculty search
// @Tags search
// @Produce json
// @Param q query string true "Free-text query"
// @Param top_k query int false "Maximum results" default(5) minimum(1) maximum(20)
// @Success 200 {object} dto.APIResponse{data=dto.SemanticSearchResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse "Index not built yet"
// @Router /search [get]
func (c *SearchController) SemanticSearch(ctx *gin.Context) {
	var query dto.SemanticSearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid search parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(errorDetail))
		return
	}

	results, err := c.searchService.Search(ctx, query.Q, query.TopK)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SemanticSearchResponse{
		Query:   query.Q,
		Results: results,
	}))
}
