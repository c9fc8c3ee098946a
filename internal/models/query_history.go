package models

import (
	"time"

	"github.com/google/uuid"
)

// QueryHistory records one execution of a compiled visualisation query.
type QueryHistory struct {
	ID              uuid.UUID `json:"id"`
	Pattern         Pattern   `json:"pattern"`
	TableName       string    `json:"tableName"`
	QueryText       string    `json:"queryText"`
	ExecutedAt      time.Time `json:"executedAt"`
	Success         bool      `json:"success"`
	RowCount        int       `json:"rowCount"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	Error           string    `json:"error,omitempty"`
}

func (q *QueryHistory) Prepare() {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.ExecutedAt.IsZero() {
		q.ExecutedAt = time.Now().UTC()
	}
}
