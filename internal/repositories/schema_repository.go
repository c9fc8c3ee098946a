package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

// SchemaRepository introspects a Postgres datasource through information_schema.
type SchemaRepository struct {
	pool    *pgxpool.Pool
	dialect database.Dialect
}

func NewSchemaRepository(pool *pgxpool.Pool) *SchemaRepository {
	return &SchemaRepository{pool: pool, dialect: database.PostgresDialect{}}
}

// GetTables returns all base tables in a schema, ordered by name.
func (r *SchemaRepository) GetTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := r.pool.Query(ctx, r.dialect.TablesQuery(), schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

// GetColumns returns a table's columns in ordinal order with normalized type tags.
func (r *SchemaRepository) GetColumns(ctx context.Context, schema, table string) ([]models.Column, error) {
	rows, err := r.pool.Query(ctx, r.dialect.ColumnsQuery(), schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var col models.Column
		var nativeType string
		if err := rows.Scan(&col.Name, &nativeType); err != nil {
			return nil, err
		}
		col.Type = r.dialect.NormalizeType(nativeType)
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}

// GetPrimaryKeys returns primary key column names in key order.
func (r *SchemaRepository) GetPrimaryKeys(ctx context.Context, schema, table string) ([]string, error) {
	rows, err := r.pool.Query(ctx, r.dialect.PrimaryKeysQuery(), schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pks []string
	for rows.Next() {
		var pk string
		if err := rows.Scan(&pk); err != nil {
			return nil, err
		}
		pks = append(pks, pk)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pks, nil
}

// GetForeignKeys returns the foreign keys where table is the child.
func (r *SchemaRepository) GetForeignKeys(ctx context.Context, schema, table string) ([]models.ForeignKey, error) {
	rows, err := r.pool.Query(ctx, r.dialect.ForeignKeysQuery(), schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []models.ForeignKey
	for rows.Next() {
		fk := models.ForeignKey{ChildTable: table}
		if err := rows.Scan(&fk.ChildColumn, &fk.ParentTable, &fk.ParentColumn); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fks, nil
}

// Introspect builds the full table list for a schema.
func (r *SchemaRepository) Introspect(ctx context.Context, schema string) ([]models.TableMetadata, error) {
	return introspect(ctx, r, schema)
}

type tableReader interface {
	GetTables(ctx context.Context, schema string) ([]string, error)
	GetColumns(ctx context.Context, schema, table string) ([]models.Column, error)
	GetPrimaryKeys(ctx context.Context, schema, table string) ([]string, error)
	GetForeignKeys(ctx context.Context, schema, table string) ([]models.ForeignKey, error)
}

func introspect(ctx context.Context, reader tableReader, schema string) ([]models.TableMetadata, error) {
	tableNames, err := reader.GetTables(ctx, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables in %s: %w", schema, err)
	}

	tables := make([]models.TableMetadata, 0, len(tableNames))
	for _, tableName := range tableNames {
		columns, err := reader.GetColumns(ctx, schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for %s: %w", tableName, err)
		}

		pks, err := reader.GetPrimaryKeys(ctx, schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get primary keys for %s: %w", tableName, err)
		}

		fks, err := reader.GetForeignKeys(ctx, schema, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get foreign keys for %s: %w", tableName, err)
		}

		table := models.NewTableMetadata(tableName, columns, pks, fks)
		if err := validateTable(table); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, nil
}

// validateTable rejects metadata whose keys name columns the table does not have.
func validateTable(t models.TableMetadata) error {
	for _, pk := range t.PrimaryKeys {
		if _, ok := t.Column(pk); !ok {
			return fmt.Errorf("malformed metadata for %s: primary key %q is not a column", t.TableName, pk)
		}
	}
	for _, fk := range t.ForeignKeys {
		if _, ok := t.Column(fk.ChildColumn); !ok {
			return fmt.Errorf("malformed metadata for %s: foreign key column %q is not a column", t.TableName, fk.ChildColumn)
		}
	}
	return nil
}
