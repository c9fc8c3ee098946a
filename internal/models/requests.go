package models

import "time"

type DiscoveryRequest struct {
	TableNames      []string `json:"tableNames" binding:"required"`
	FullColumnNames []string `json:"fullColumnNames" binding:"required"`
}

type DiscoveryResponse struct {
	Pattern Pattern               `json:"pattern"`
	Options []VisualisationOption `json:"options"`
	Rows    []Row                 `json:"rows"`
}

type ExplorationRequest struct {
	VisID VisID  `json:"visId" binding:"required"`
	Table string `json:"table" binding:"required"`
}

type ExplorationResponse struct {
	Pattern Pattern               `json:"pattern"`
	Options []VisualisationOption `json:"options"`
}

// ExplorationDataRequest fetches rows for a pattern already chosen in exploration mode.
type ExplorationDataRequest struct {
	Pattern         string   `json:"pattern" binding:"required"`
	TableNames      []string `json:"tableNames" binding:"required"`
	FullColumnNames []string `json:"fullColumnNames" binding:"required"`
}

// CompileRequest compiles without executing. An empty Pattern means classify first.
type CompileRequest struct {
	Pattern         string   `json:"pattern"`
	TableNames      []string `json:"tableNames" binding:"required"`
	FullColumnNames []string `json:"fullColumnNames" binding:"required"`
}

type CompileResponse struct {
	Pattern Pattern `json:"pattern"`
	Query   string  `json:"query"`
}

// CatalogResponse is the wire form of a catalog snapshot.
type CatalogResponse struct {
	ID          string          `json:"id"`
	Version     uint64          `json:"version"`
	RefreshedAt time.Time       `json:"refreshedAt"`
	Tables      []TableMetadata `json:"tables"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	Connected      bool   `json:"connected"`
	CatalogVersion uint64 `json:"catalogVersion"`
	Tables         int    `json:"tables"`
}
