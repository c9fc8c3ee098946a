package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, connectionHandler *handlers.ConnectionHandler, catalogHandler *handlers.CatalogHandler, visualisationHandler *handlers.VisualisationHandler) {
	api := router.Group("/api/v1")

	connectionRoutes := NewConnectionRoutes(connectionHandler)
	connectionRoutes.RegisterRoutes(api)

	catalogRoutes := NewCatalogRoutes(catalogHandler)
	catalogRoutes.RegisterRoutes(api)

	visualisationRoutes := NewVisualisationRoutes(visualisationHandler)
	visualisationRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
