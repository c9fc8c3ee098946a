package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/responses"
	"github.com/Abdus2609/vizor/internal/services"
)

type CatalogHandler struct {
	catalogService    *services.CatalogService
	connectionService *services.ConnectionService
}

func NewCatalogHandler(catalogService *services.CatalogService, connectionService *services.ConnectionService) *CatalogHandler {
	return &CatalogHandler{
		catalogService:    catalogService,
		connectionService: connectionService,
	}
}

// TableMetadata refreshes the catalog from the active datasource.
func (h *CatalogHandler) TableMetadata(c *gin.Context) {
	snap, err := h.catalogService.Refresh(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load table metadata")
		return
	}
	responses.Success(c, http.StatusOK, snap.Response(), "Table metadata retrieved successfully")
}

// Catalog returns the current snapshot without touching the datasource.
func (h *CatalogHandler) Catalog(c *gin.Context) {
	responses.Success(c, http.StatusOK, h.catalogService.Current().Response(), "Catalog retrieved successfully")
}

func (h *CatalogHandler) Health(c *gin.Context) {
	snap := h.catalogService.Current()
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:         "ok",
		Connected:      h.connectionService.IsConnected(),
		CatalogVersion: snap.Version,
		Tables:         len(snap.Tables()),
	})
}
