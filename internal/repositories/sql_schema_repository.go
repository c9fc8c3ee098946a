package repositories

import (
	"context"
	"database/sql"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

// SQLSchemaRepository introspects MySQL and SQL Server through database/sql,
// using the metadata queries of the given dialect.
type SQLSchemaRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLSchemaRepository(db *sql.DB, dialect database.Dialect) *SQLSchemaRepository {
	return &SQLSchemaRepository{db: db, dialect: dialect}
}

func (r *SQLSchemaRepository) GetTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.TablesQuery(), schema)
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
	return tables, rows.Err()
}

func (r *SQLSchemaRepository) GetColumns(ctx context.Context, schema, table string) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.ColumnsQuery(), schema, table)
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
	return columns, rows.Err()
}

func (r *SQLSchemaRepository) GetPrimaryKeys(ctx context.Context, schema, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.PrimaryKeysQuery(), schema, table)
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
	return pks, rows.Err()
}

func (r *SQLSchemaRepository) GetForeignKeys(ctx context.Context, schema, table string) ([]models.ForeignKey, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.ForeignKeysQuery(), schema, table)
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
	return fks, rows.Err()
}

func (r *SQLSchemaRepository) Introspect(ctx context.Context, schema string) ([]models.TableMetadata, error) {
	return introspect(ctx, r, schema)
}
