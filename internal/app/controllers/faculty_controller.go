package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetp/facultyfinder/internal/app/models/dto"
	"github.com/meetp/facultyfinder/internal/app/services"
	"github.com/meetp/facultyfinder/internal/middleware"
)

// FacultyController handles the read-only faculty catalogue endpoints
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// ListFaculty returns all faculty records, bounded by the limit parameter.
// @Summary List faculty
// @Tags faculty
// @Produce json
// @Param limit query int false "Maximum rows returned" default(100) minimum(1) maximum(1000)
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyMember}
// @Router /faculty [get]
func (c *FacultyController) ListFaculty(ctx *gin.Context) {
	var query dto.ListFacultyQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid list parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(errorDetail))
		return
	}

	records, err := c.facultyService.ListAll(ctx, query.Limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}

// SearchByName returns faculty whose name contains the query, ignoring case.
// @Summary Search faculty by name
// @Tags faculty
// @Produce json
// @Param q query string true "Name substring"
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyMember}
// @Failure 400 {object} dto.APIResponse
// @Router /faculty/search [get]
func (c *FacultyController) SearchByName(ctx *gin.Context) {
	var query dto.NameSearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Search term is required").WithField("q")
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(errorDetail))
		return
	}

	records, err := c.facultyService.SearchByName(ctx, query.Q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(records))
}
