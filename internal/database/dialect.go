package database

import (
	"fmt"
	"strings"

	"github.com/Abdus2609/vizor/internal/models"
)

// LabelSeparator joins the parts of a composite label, both in generated SQL
// and in the alias handed back to the UI.
const LabelSeparator = " | "

// Dialect covers the SQL differences between supported datasources.
type Dialect interface {
	Name() string

	// Metadata queries. Each takes (schema, table) except TablesQuery, which takes (schema).
	TablesQuery() string
	ColumnsQuery() string
	PrimaryKeysQuery() string
	ForeignKeysQuery() string

	QuoteIdentifier(name string) string
	// ConcatLabel joins already quoted expressions with LabelSeparator.
	ConcatLabel(quoted []string) string
	// NormalizeType maps a native type name onto the shared type tags.
	NormalizeType(nativeType string) string
}

// GetDialect returns the dialect for a driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case models.DriverPostgres, "":
		return PostgresDialect{}, nil
	case models.DriverMySQL:
		return MySQLDialect{}, nil
	case models.DriverSQLServer, "mssql":
		return SQLServerDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

var (
	_ Dialect = PostgresDialect{}
	_ Dialect = MySQLDialect{}
	_ Dialect = SQLServerDialect{}
)

func separatorLiteral() string {
	return "'" + LabelSeparator + "'"
}

func concatWS(quoted []string) string {
	if len(quoted) == 1 {
		return quoted[0]
	}
	return fmt.Sprintf("CONCAT_WS(%s, %s)", separatorLiteral(), strings.Join(quoted, ", "))
}
