package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/responses"
	"github.com/Abdus2609/vizor/internal/services"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type VisualisationHandler struct {
	visualisationService *services.VisualisationService
}

func NewVisualisationHandler(visualisationService *services.VisualisationService) *VisualisationHandler {
	return &VisualisationHandler{
		visualisationService: visualisationService,
	}
}

// Discover classifies the selected columns and returns chart options with data.
func (h *VisualisationHandler) Discover(c *gin.Context) {
	var req models.DiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: tableNames and fullColumnNames are required")
		return
	}

	resp, err := h.visualisationService.Discover(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to build visualisations")
		return
	}
	responses.Success(c, http.StatusOK, resp, "Visualisations retrieved successfully")
}

// ExploreOptions lists every way one chart type can be drawn from a table.
func (h *VisualisationHandler) ExploreOptions(c *gin.Context) {
	var req models.ExplorationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: visId and table are required")
		return
	}

	resp, err := h.visualisationService.Explore(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to explore visualisation")
		return
	}
	responses.Success(c, http.StatusOK, resp, "Visualisation options retrieved successfully")
}

// ExploreData fetches rows for an option picked in ExploreOptions.
func (h *VisualisationHandler) ExploreData(c *gin.Context) {
	var req models.ExplorationDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: pattern, tableNames and fullColumnNames are required")
		return
	}

	rows, err := h.visualisationService.FetchForPattern(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to fetch visualisation data")
		return
	}
	responses.Success(c, http.StatusOK, rows, "Visualisation data retrieved successfully")
}

// Compile returns the query a selection would run, without running it.
func (h *VisualisationHandler) Compile(c *gin.Context) {
	var req models.CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body: tableNames and fullColumnNames are required")
		return
	}

	resp, err := h.visualisationService.Compile(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to compile query")
		return
	}
	responses.Success(c, http.StatusOK, resp, "Query compiled successfully")
}

func (h *VisualisationHandler) Charts(c *gin.Context) {
	responses.Success(c, http.StatusOK, services.SupportedCharts(), "Charts retrieved successfully")
}

// History returns the most recent executed queries.
func (h *VisualisationHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			responses.Fail(c, http.StatusBadRequest, err, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := h.visualisationService.History(c.Request.Context(), limit)
	if err != nil {
		fail(c, err, "Failed to retrieve query history")
		return
	}
	responses.Success(c, http.StatusOK, entries, "Query history retrieved successfully")
}
