package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
)

func TestQueryCompiler_Postgres(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.PostgresDialect{}, nil)

	tests := []struct {
		name    string
		pattern models.Pattern
		table   string
		columns []string
		want    string
	}{
		{
			name:    "regular",
			pattern: models.PatternNone,
			table:   "film",
			columns: []string{"title", "length"},
			want:    `SELECT "title", "length" FROM "film" WHERE "title" IS NOT NULL AND "length" IS NOT NULL`,
		},
		{
			name:    "basic keyed",
			pattern: models.PatternBasic,
			table:   "film",
			columns: []string{"film_id", "length"},
			want:    `SELECT "film_id", "length" FROM "film" WHERE "film_id" IS NOT NULL AND "length" IS NOT NULL`,
		},
		{
			name:    "basic grouped by foreign keys",
			pattern: models.PatternBasic,
			table:   "rental_stats",
			columns: []string{"customer_id", "store_id", "amount"},
			want: `SELECT "customer_id" || ' | ' || "store_id" AS "customer_id | store_id", SUM("amount") AS "amount" ` +
				`FROM "rental_stats" WHERE "customer_id" IS NOT NULL AND "store_id" IS NOT NULL AND "amount" IS NOT NULL ` +
				`GROUP BY "customer_id", "store_id" ORDER BY "customer_id", "store_id"`,
		},
		{
			name:    "weak",
			pattern: models.PatternWeak,
			table:   "store_sales",
			columns: []string{"store_id", "month", "revenue"},
			want: `SELECT "store_id" AS "store_id", "month", SUM("revenue") AS "revenue" ` +
				`FROM "store_sales" WHERE "store_id" IS NOT NULL AND "month" IS NOT NULL AND "revenue" IS NOT NULL ` +
				`GROUP BY "month", "store_id" ORDER BY "month", "store_id"`,
		},
		{
			name:    "one-many",
			pattern: models.PatternOneMany,
			table:   "employee",
			columns: []string{"employee_id", "store_id", "salary"},
			want: `SELECT "store_id" AS "store_id", "employee_id", ABS("salary") AS "salary" ` +
				`FROM "employee" WHERE "employee_id" IS NOT NULL AND "store_id" IS NOT NULL AND "salary" IS NOT NULL ` +
				`ORDER BY "salary" DESC`,
		},
		{
			name:    "many-many uses the plain select",
			pattern: models.PatternManyMany,
			table:   "film_actor",
			columns: []string{"actor_id", "film_id", "screen_time"},
			want: `SELECT "actor_id", "film_id", "screen_time" FROM "film_actor" ` +
				`WHERE "actor_id" IS NOT NULL AND "film_id" IS NOT NULL AND "screen_time" IS NOT NULL`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := mustSelect(snap, tt.table, tt.columns...)
			got, err := compiler.Compile(snap, tt.pattern, sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, ";")
		})
	}
}

func TestQueryCompiler_OneManyOrdersEveryAttributeDescending(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.PostgresDialect{}, nil)
	sel := mustSelect(snap, "employee", "employee_id", "store_id", "salary", "hired")

	got, err := compiler.Compile(snap, models.PatternOneMany, sel)
	require.NoError(t, err)
	assert.Contains(t, got, `ORDER BY "salary" DESC, "hired" DESC`)
}

func TestQueryCompiler_MySQL(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.MySQLDialect{}, nil)
	sel := mustSelect(snap, "rental_stats", "customer_id", "store_id", "amount")

	got, err := compiler.Compile(snap, models.PatternBasic, sel)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT CONCAT_WS(' | ', `customer_id`, `store_id`) AS `customer_id | store_id`, SUM(`amount`) AS `amount` "+
			"FROM `rental_stats` WHERE `customer_id` IS NOT NULL AND `store_id` IS NOT NULL AND `amount` IS NOT NULL "+
			"GROUP BY `customer_id`, `store_id` ORDER BY `customer_id`, `store_id`",
		got)
}

func TestQueryCompiler_SQLServerQuoting(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.SQLServerDialect{}, nil)
	sel := mustSelect(snap, "film", "film_id", "length")

	got, err := compiler.Compile(snap, models.PatternBasic, sel)
	require.NoError(t, err)
	assert.Equal(t, "SELECT [film_id], [length] FROM [film] WHERE [film_id] IS NOT NULL AND [length] IS NOT NULL", got)
}

func TestQueryCompiler_RejectsIdentifiersOutsideCatalog(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.PostgresDialect{}, nil)

	film, _ := snap.Table("film")
	injected := &Selection{
		Table:   film,
		Columns: []models.Column{{Name: `length"; DROP TABLE film; --`, Type: "int4", TableName: "film"}},
	}

	_, err := compiler.Compile(snap, models.PatternNone, injected)
	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)

	ghost := &Selection{
		Table:   models.TableMetadata{TableName: "ghost"},
		Columns: []models.Column{{Name: "id", TableName: "ghost"}},
	}
	_, err = compiler.Compile(snap, models.PatternNone, ghost)
	require.ErrorAs(t, err, &selErr)

	_, err = compiler.Compile(snap, models.PatternNone, &Selection{Table: film})
	require.ErrorAs(t, err, &selErr)
}

func TestQueryCompiler_LogsCompiledQuery(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.PostgresDialect{}, zap.New(core))

	_, err := compiler.Compile(snap, models.PatternBasic, mustSelect(snap, "film", "film_id", "length"))
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Compiled visualisation query", entry.Message)
	assert.Equal(t, "basic", entry.ContextMap()["pattern"])
	assert.Equal(t, "postgres", entry.ContextMap()["dialect"])
}

// The grouped query can never return more rows than the ungrouped query over
// the same filter, since it groups the same filtered rows.
func TestQueryCompiler_GroupedAndRegularShareFilter(t *testing.T) {
	snap := fixtureSnapshot()
	compiler := NewQueryCompiler(database.PostgresDialect{}, nil)
	sel := mustSelect(snap, "rental_stats", "customer_id", "store_id", "amount")

	grouped, err := compiler.Compile(snap, models.PatternBasic, sel)
	require.NoError(t, err)
	regular, err := compiler.Compile(snap, models.PatternNone, sel)
	require.NoError(t, err)

	filter := `WHERE "customer_id" IS NOT NULL AND "store_id" IS NOT NULL AND "amount" IS NOT NULL`
	assert.Contains(t, grouped, filter)
	assert.Contains(t, regular, filter)
	assert.Contains(t, grouped, "GROUP BY")
	assert.NotContains(t, regular, "GROUP BY")
}
