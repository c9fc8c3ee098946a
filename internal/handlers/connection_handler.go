package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/responses"
	"github.com/Abdus2609/vizor/internal/services"
)

type ConnectionHandler struct {
	catalogService    *services.CatalogService
	connectionService *services.ConnectionService
}

func NewConnectionHandler(catalogService *services.CatalogService, connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		catalogService:    catalogService,
		connectionService: connectionService,
	}
}

// Login connects to the datasource in the request body and returns its catalog.
func (h *ConnectionHandler) Login(c *gin.Context) {
	var req models.ConnectionDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: host, port, databaseName and username are required")
		return
	}

	if err := req.Normalize().Validate(); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid connection details")
		return
	}

	snap, err := h.catalogService.Connect(c.Request.Context(), req)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			_ = c.Error(err)
			responses.Fail(c, http.StatusBadGateway, err, "Failed to connect to database")
			return
		}
		fail(c, err, "Failed to load table metadata")
		return
	}

	responses.Success(c, http.StatusOK, snap.Response(), "Connected successfully")
}

// Options returns previously used connection values for autocomplete.
func (h *ConnectionHandler) Options(c *gin.Context) {
	opts, err := h.connectionService.Options(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load connection options")
		return
	}
	responses.Success(c, http.StatusOK, opts, "Connection options retrieved successfully")
}
