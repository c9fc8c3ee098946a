package database

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) TablesQuery() string {
	return `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
}

// udt_name gives the short type names (int4, varchar, bpchar) rather than the
// SQL standard spelling in data_type.
func (PostgresDialect) ColumnsQuery() string {
	return `
		SELECT column_name, udt_name
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`
}

func (PostgresDialect) PrimaryKeysQuery() string {
	return `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`
}

// Joining through referential_constraints keeps composite keys paired
// column by column.
func (PostgresDialect) ForeignKeysQuery() string {
	return `
		SELECT kcu.column_name, pk.table_name, pk.column_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = rc.constraint_name
			AND kcu.constraint_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage pk
			ON pk.constraint_name = rc.unique_constraint_name
			AND pk.constraint_schema = rc.unique_constraint_schema
			AND pk.ordinal_position = kcu.position_in_unique_constraint
		WHERE kcu.table_schema = $1 AND kcu.table_name = $2
		ORDER BY kcu.constraint_name, kcu.ordinal_position
	`
}

func (PostgresDialect) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (PostgresDialect) ConcatLabel(quoted []string) string {
	return strings.Join(quoted, " || "+separatorLiteral()+" || ")
}

func (PostgresDialect) NormalizeType(nativeType string) string {
	t := strings.ToLower(strings.TrimSpace(nativeType))
	switch t {
	case "bpchar":
		return "char"
	case "timestamptz":
		return "timestamp"
	case "timetz":
		return "time"
	case "decimal":
		return "numeric"
	default:
		return t
	}
}
