package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/responses"
)

type selectionDetails struct {
	Unresolved  []string            `json:"unresolved"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

type queryDetails struct {
	Query string `json:"query"`
}

// statusFor maps the typed service errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		selErr   *apperrors.SelectionError
		multiErr *apperrors.MultiTableUnsupportedError
		cfgErr   *apperrors.ConfigurationError
		introErr *apperrors.SchemaIntrospectionError
		execErr  *apperrors.QueryExecutionError
	)

	switch {
	case errors.Is(err, apperrors.ErrNotConnected), errors.Is(err, apperrors.ErrEmptyCatalog),
		errors.Is(err, apperrors.ErrDatasourceChanged):
		return http.StatusConflict
	case errors.As(err, &selErr):
		return http.StatusBadRequest
	case errors.As(err, &multiErr), errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &introErr), errors.As(err, &execErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status and attaches it to the context so
// the request logger records it.
func fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	var data interface{}
	var selErr *apperrors.SelectionError
	var execErr *apperrors.QueryExecutionError
	switch {
	case errors.As(err, &selErr):
		data = selectionDetails{Unresolved: selErr.Unresolved, Suggestions: selErr.Suggestions}
	case errors.As(err, &execErr):
		data = queryDetails{Query: execErr.Query}
	}

	responses.FailWithData(c, statusFor(err), err, message, data)
}
