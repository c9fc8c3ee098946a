package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abdus2609/vizor/internal/models"
)

// DataRepository runs compiled SELECT statements against a Postgres datasource.
type DataRepository struct {
	pool *pgxpool.Pool
}

func NewDataRepository(pool *pgxpool.Pool) *DataRepository {
	return &DataRepository{pool: pool}
}

// Query returns rows keyed by result column label, in select-list order.
func (r *DataRepository) Query(ctx context.Context, query string) ([]models.Row, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := []models.Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		row := models.NewRow()
		for i, fd := range fields {
			row.Set(fd.Name, normalizeValue(values[i]))
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// SQLDataRepository runs compiled SELECT statements through database/sql.
type SQLDataRepository struct {
	db *sql.DB
}

func NewSQLDataRepository(db *sql.DB) *SQLDataRepository {
	return &SQLDataRepository{db: db}
}

func (r *SQLDataRepository) Query(ctx context.Context, query string) ([]models.Row, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	result := []models.Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := models.NewRow()
		for i, col := range columns {
			row.Set(col.Name(), normalizeSQLValue(col.DatabaseTypeName(), values[i]))
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// normalizeValue converts driver values into JSON-friendly ones.
func normalizeValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(v).String()
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Time:
		if !v.Valid {
			return nil
		}
		d := time.Duration(v.Microseconds) * time.Microsecond
		return time.Time{}.Add(d).Format("15:04:05")
	default:
		return v
	}
}

// MySQL hands DECIMAL and SUM results back as text; those become numbers.
func normalizeSQLValue(dbType string, val any) any {
	b, ok := val.([]byte)
	if !ok {
		return normalizeValue(val)
	}
	switch strings.ToUpper(dbType) {
	case "DECIMAL", "NUMERIC", "NEWDECIMAL", "MONEY", "SMALLMONEY":
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			return f
		}
	}
	return string(b)
}
