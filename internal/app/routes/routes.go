package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetp/facultyfinder/internal/app/controllers"
	"github.com/meetp/facultyfinder/internal/app/services"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	facultyController *controllers.FacultyController,
	searchController *controllers.SearchController,
	searchService services.SearchService,
) {
	// Status endpoint: reports whether semantic search can serve yet
	router.GET("/", func(c *gin.Context) {
		status := gin.H{
			"status":       "ok",
			"search_ready": true,
		}
		if err := searchService.Ready(); err != nil {
			status["search_ready"] = false
			status["search_detail"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	// API version group
	v1 := router.Group("/api/v1")

	// Faculty catalogue routes (public access)
	faculty := v1.Group("/faculty")
	{
		faculty.GET("", facultyController.ListFaculty)
		faculty.GET("/search", facultyController.SearchByName)
	}

	// Semantic search
	v1.GET("/search", searchController.SemanticSearch)
}
