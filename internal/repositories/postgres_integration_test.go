//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/testhelpers"
)

func TestSchemaRepository_Introspect(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tables, err := NewSchemaRepository(db.Pool).Introspect(ctx, "public")
	require.NoError(t, err)

	names := make([]string, len(tables))
	byName := map[string]models.TableMetadata{}
	for i, tbl := range tables {
		names[i] = tbl.TableName
		byName[tbl.TableName] = tbl
	}
	assert.Equal(t, []string{"actor", "employee", "film", "film_actor", "store", "store_sales"}, names)

	sales := byName["store_sales"]
	assert.Equal(t, []string{"store_id", "month"}, sales.PrimaryKeys)
	require.Len(t, sales.ForeignKeys, 1)
	assert.Equal(t, models.ForeignKey{ParentTable: "store", ParentColumn: "store_id", ChildTable: "store_sales", ChildColumn: "store_id"}, sales.ForeignKeys[0])

	film := byName["film"]
	var types []string
	for _, c := range film.Columns {
		types = append(types, c.Type)
	}
	assert.Equal(t, []string{"int4", "varchar", "int2", "date"}, types)

	store := byName["store"]
	budget, ok := store.Column("budget")
	require.True(t, ok)
	assert.Equal(t, "numeric", budget.Type)
	assert.False(t, budget.IsPrimaryKey)
}

func TestSchemaRepository_IntrospectIsIdempotent(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)
	ctx := context.Background()
	repo := NewSchemaRepository(db.Pool)

	first, err := repo.Introspect(ctx, "public")
	require.NoError(t, err)
	second, err := repo.Introspect(ctx, "public")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSchemaRepository_UnknownSchemaIsEmpty(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)

	tables, err := NewSchemaRepository(db.Pool).Introspect(context.Background(), "does_not_exist")
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestDataRepository_Query(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)

	rows, err := NewDataRepository(db.Pool).Query(context.Background(),
		`SELECT "film_id", "length", "release_date" FROM "film" WHERE "release_date" IS NOT NULL`)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, []string{"film_id", "length", "release_date"}, keys(row))
	length, _ := row.Get("length")
	assert.EqualValues(t, 86, length)
	released, _ := row.Get("release_date")
	assert.Equal(t, "2006-02-15T00:00:00Z", released)
}

func TestDataRepository_NumericBecomesFloat(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)

	rows, err := NewDataRepository(db.Pool).Query(context.Background(),
		`SELECT "store_id", SUM("budget") AS "budget" FROM "store" GROUP BY "store_id" ORDER BY "store_id"`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	budget, _ := rows[0].Get("budget")
	assert.InDelta(t, 1000.50, budget, 0.001)
}

func TestDataRepository_InvalidQuery(t *testing.T) {
	db := testhelpers.GetTestPostgres(t)

	_, err := NewDataRepository(db.Pool).Query(context.Background(), `SELECT "nope" FROM "film"`)
	assert.Error(t, err)
}

func keys(row models.Row) []string {
	var out []string
	for pair := row.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
