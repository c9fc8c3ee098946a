package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/handlers"
)

type VisualisationRoutes struct {
	handler *handlers.VisualisationHandler
}

func NewVisualisationRoutes(handler *handlers.VisualisationHandler) *VisualisationRoutes {
	return &VisualisationRoutes{handler: handler}
}

func (r *VisualisationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/data-first", r.handler.Discover)
	router.POST("/compile", r.handler.Compile)
	router.GET("/charts", r.handler.Charts)
	router.GET("/query-history", r.handler.History)

	visFirst := router.Group("/vis-first")
	{
		visFirst.POST("/options", r.handler.ExploreOptions)
		visFirst.POST("/data", r.handler.ExploreData)
	}
}
