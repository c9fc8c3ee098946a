package database

import "strings"

type SQLServerDialect struct{}

func (SQLServerDialect) Name() string { return "sqlserver" }

func (SQLServerDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (SQLServerDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`
}

func (SQLServerDialect) PrimaryKeysQuery() string {
	return `
		SELECT kcu.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
		WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
			AND tc.TABLE_SCHEMA = @p1
			AND tc.TABLE_NAME = @p2
		ORDER BY kcu.ORDINAL_POSITION
	`
}

func (SQLServerDialect) ForeignKeysQuery() string {
	return `
		SELECT kcu1.COLUMN_NAME, kcu2.TABLE_NAME, kcu2.COLUMN_NAME
		FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu1
			ON rc.CONSTRAINT_NAME = kcu1.CONSTRAINT_NAME
			AND rc.CONSTRAINT_SCHEMA = kcu1.CONSTRAINT_SCHEMA
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu2
			ON rc.UNIQUE_CONSTRAINT_NAME = kcu2.CONSTRAINT_NAME
			AND rc.UNIQUE_CONSTRAINT_SCHEMA = kcu2.CONSTRAINT_SCHEMA
			AND kcu1.ORDINAL_POSITION = kcu2.ORDINAL_POSITION
		WHERE kcu1.TABLE_SCHEMA = @p1 AND kcu1.TABLE_NAME = @p2
		ORDER BY kcu1.CONSTRAINT_NAME, kcu1.ORDINAL_POSITION
	`
}

func (SQLServerDialect) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (SQLServerDialect) ConcatLabel(quoted []string) string {
	return concatWS(quoted)
}

func (SQLServerDialect) NormalizeType(nativeType string) string {
	t := strings.ToLower(strings.TrimSpace(nativeType))
	switch t {
	case "tinyint", "smallint":
		return "int2"
	case "int":
		return "int4"
	case "bigint":
		return "int8"
	case "decimal", "numeric", "money", "smallmoney":
		return "numeric"
	case "real":
		return "float4"
	case "float":
		return "float8"
	case "datetime", "datetime2", "smalldatetime", "datetimeoffset":
		return "timestamp"
	case "nvarchar":
		return "varchar"
	case "nchar":
		return "char"
	case "ntext":
		return "text"
	default:
		return t
	}
}
