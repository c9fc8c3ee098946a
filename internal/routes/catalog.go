package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/handlers"
)

type CatalogRoutes struct {
	handler *handlers.CatalogHandler
}

func NewCatalogRoutes(handler *handlers.CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

func (r *CatalogRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/table-metadata", r.handler.TableMetadata)
	router.GET("/catalog", r.handler.Catalog)
	router.GET("/health", r.handler.Health)
}
