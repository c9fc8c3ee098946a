package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotConnected = errors.New("no datasource connected")
	ErrEmptyCatalog = errors.New("catalog is empty; refresh table metadata first")
	// ErrDatasourceChanged is returned by a refresh that finished after another
	// datasource became active. Its result is discarded.
	ErrDatasourceChanged = errors.New("datasource changed during catalog refresh")
)

// SchemaIntrospectionError wraps a failed catalog refresh. The previous
// snapshot stays in place when this is returned.
type SchemaIntrospectionError struct {
	Err error
}

func (e *SchemaIntrospectionError) Error() string {
	return fmt.Sprintf("schema introspection failed: %v", e.Err)
}

func (e *SchemaIntrospectionError) Unwrap() error { return e.Err }

// SelectionError reports qualified column names that did not resolve against
// the catalog, with close matches where there are any.
type SelectionError struct {
	Reason      string
	Unresolved  []string
	Suggestions map[string][]string
}

func (e *SelectionError) Error() string {
	if len(e.Unresolved) == 0 {
		return "invalid selection: " + e.Reason
	}
	parts := make([]string, 0, len(e.Unresolved))
	for _, name := range e.Unresolved {
		if s := e.Suggestions[name]; len(s) > 0 {
			parts = append(parts, fmt.Sprintf("%s (did you mean %s?)", name, strings.Join(s, ", ")))
			continue
		}
		parts = append(parts, name)
	}
	return fmt.Sprintf("invalid selection: %s: %s", e.Reason, strings.Join(parts, "; "))
}

// MultiTableUnsupportedError is returned when a selection spans more than one
// table. Classification and compilation only handle a single table's keys.
type MultiTableUnsupportedError struct {
	Tables []string
}

func (e *MultiTableUnsupportedError) Error() string {
	return fmt.Sprintf("selections spanning multiple tables are not supported: %s", strings.Join(e.Tables, ", "))
}

// ConfigurationError is an exploration request that cannot be served by the
// named table, e.g. an unknown table or a chart whose keys the table lacks.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Message
}

func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// QueryExecutionError carries the compiled query that failed.
type QueryExecutionError struct {
	Query string
	Err   error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }
