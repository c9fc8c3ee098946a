package database

import "strings"

type MySQLDialect struct{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (MySQLDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

func (MySQLDialect) PrimaryKeysQuery() string {
	return `SELECT COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND CONSTRAINT_NAME = 'PRIMARY' ORDER BY ORDINAL_POSITION`
}

func (MySQLDialect) ForeignKeysQuery() string {
	return `SELECT COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND REFERENCED_TABLE_NAME IS NOT NULL ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION`
}

func (MySQLDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQLDialect) ConcatLabel(quoted []string) string {
	return concatWS(quoted)
}

func (MySQLDialect) NormalizeType(nativeType string) string {
	t := strings.ToLower(strings.TrimSpace(nativeType))
	switch t {
	case "tinyint", "smallint", "year":
		return "int2"
	case "mediumint", "int", "integer":
		return "int4"
	case "bigint":
		return "int8"
	case "decimal", "numeric":
		return "numeric"
	case "float":
		return "float4"
	case "double", "real":
		return "float8"
	case "datetime", "timestamp":
		return "timestamp"
	case "tinytext", "mediumtext", "longtext":
		return "text"
	default:
		return t
	}
}
