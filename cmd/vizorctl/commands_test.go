package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/services"
)

type staticSchema struct{}

func (staticSchema) Introspect(ctx context.Context, schema string) ([]models.TableMetadata, error) {
	return []models.TableMetadata{
		models.NewTableMetadata("store",
			[]models.Column{{Name: "store_id", Type: "int4"}, {Name: "budget", Type: "numeric"}},
			[]string{"store_id"}, nil),
		models.NewTableMetadata("employee",
			[]models.Column{{Name: "employee_id", Type: "int4"}, {Name: "store_id", Type: "int4"}, {Name: "salary", Type: "numeric"}},
			[]string{"employee_id"},
			[]models.ForeignKey{{ParentTable: "store", ParentColumn: "store_id", ChildTable: "employee", ChildColumn: "store_id"}}),
	}, nil
}

type emptyRunner struct{}

func (emptyRunner) Query(ctx context.Context, query string) ([]models.Row, error) {
	return []models.Row{}, nil
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var seen models.ConnectionDetails
	root := newRootCmd(func(a *app) services.Connector {
		return func(ctx context.Context, details models.ConnectionDetails) (*services.Datasource, error) {
			seen = details
			return services.NewDatasource(details, database.PostgresDialect{}, staticSchema{}, emptyRunner{}, nil), nil
		}
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"--database", "shop", "--user", "vizor"}, args...))
	err := root.Execute()
	if err == nil && len(args) > 0 && args[0] != "charts" {
		assert.Equal(t, "shop", seen.DatabaseName)
	}
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := run(t, "compile", "employee.employee_id", "employee.store_id", "employee.salary")
	require.NoError(t, err)

	var resp models.CompileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, models.PatternOneMany, resp.Pattern)
	assert.Contains(t, resp.Query, `ORDER BY "salary" DESC`)
}

func TestCompileCommand_PatternOverride(t *testing.T) {
	out, err := run(t, "compile", "--pattern", "none", "employee.employee_id", "employee.salary")
	require.NoError(t, err)

	var resp models.CompileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, models.PatternNone, resp.Pattern)
	assert.Equal(t, `SELECT "employee_id", "salary" FROM "employee" WHERE "employee_id" IS NOT NULL AND "salary" IS NOT NULL`, resp.Query)
}

func TestDiscoverCommand(t *testing.T) {
	out, err := run(t, "discover", "store.store_id", "store.budget")
	require.NoError(t, err)

	var resp struct {
		Pattern models.Pattern               `json:"pattern"`
		Options []models.VisualisationOption `json:"options"`
		Rows    []map[string]interface{}     `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, models.PatternBasic, resp.Pattern)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, models.VisBar, resp.Options[0].VisID)
	assert.NotNil(t, resp.Rows)
}

func TestExploreCommand(t *testing.T) {
	out, err := run(t, "explore", "treemap", "employee")
	require.NoError(t, err)

	var resp models.ExplorationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "employee_id vs salary, for each store_id", resp.Options[0].Title)
}

func TestExploreCommand_UnknownChart(t *testing.T) {
	_, err := run(t, "explore", "pie", "employee")
	assert.Error(t, err)
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)

	var cat models.CatalogResponse
	require.NoError(t, json.Unmarshal([]byte(out), &cat))
	require.Len(t, cat.Tables, 2)
	assert.Equal(t, "employee", cat.Tables[0].TableName)
}

func TestChartsCommandSkipsConnection(t *testing.T) {
	root := newRootCmd(func(a *app) services.Connector {
		return func(ctx context.Context, details models.ConnectionDetails) (*services.Datasource, error) {
			t.Fatal("charts must not connect")
			return nil, nil
		}
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"charts"})
	require.NoError(t, root.Execute())

	var charts []services.ChartInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &charts))
	assert.Len(t, charts, 15)
}

func TestTablesOf(t *testing.T) {
	assert.Equal(t, []string{"film", "store"}, tablesOf([]string{"film.a", "store.b", "film.c", ".x"}))
}

func TestConnectionDefaultsPerDriver(t *testing.T) {
	tests := []struct {
		args       []string
		wantPort   string
		wantSchema string
	}{
		{[]string{"catalog"}, "5432", "public"},
		{[]string{"--driver", "mysql", "catalog"}, "3306", "shop"},
		{[]string{"--driver", "sqlserver", "catalog"}, "1433", "dbo"},
		{[]string{"--driver", "mysql", "--port", "3307", "catalog"}, "3307", "shop"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var seen models.ConnectionDetails
			root := newRootCmd(func(a *app) services.Connector {
				return func(ctx context.Context, details models.ConnectionDetails) (*services.Datasource, error) {
					seen = details
					return services.NewDatasource(details, database.PostgresDialect{}, staticSchema{}, emptyRunner{}, nil), nil
				}
			})
			root.SetOut(&bytes.Buffer{})
			root.SetArgs(append([]string{"--database", "shop", "--user", "vizor"}, tt.args...))
			require.NoError(t, root.Execute())

			assert.Equal(t, tt.wantPort, seen.Port)
			assert.Equal(t, tt.wantSchema, seen.Schema)
		})
	}
}
