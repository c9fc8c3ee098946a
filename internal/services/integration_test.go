//go:build integration

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdus2609/vizor/internal/catalog"
	"github.com/Abdus2609/vizor/internal/database"
	"github.com/Abdus2609/vizor/internal/models"
	"github.com/Abdus2609/vizor/internal/repositories"
	"github.com/Abdus2609/vizor/internal/testhelpers"
)

func newPostgresStack(t *testing.T) (*CatalogService, *VisualisationService) {
	t.Helper()
	db := testhelpers.GetTestPostgres(t)

	connections := NewConnectionService(NewConnector(database.DefaultPoolOptions(), nil), repositories.NewMemoryConnectionHistory(), nil)
	t.Cleanup(connections.Close)

	catalogService := NewCatalogService(catalog.NewStore(), connections, 30*time.Second, nil)
	vis := NewVisualisationService(catalogService, connections, repositories.NewMemoryQueryHistoryRepository(10), 30*time.Second, nil)

	_, err := catalogService.Connect(context.Background(), db.Details)
	require.NoError(t, err)
	return catalogService, vis
}

func TestIntegration_RefreshIsIdempotent(t *testing.T) {
	catalogService, _ := newPostgresStack(t)

	first := catalogService.Current()
	second, err := catalogService.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Len(t, second.Tables(), 6)
}

func TestIntegration_DiscoverWeakEntity(t *testing.T) {
	_, vis := newPostgresStack(t)

	resp, err := vis.Discover(context.Background(), models.DiscoveryRequest{
		TableNames:      []string{"store_sales"},
		FullColumnNames: []string{"store_sales.store_id", "store_sales.month", "store_sales.revenue"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PatternWeak, resp.Pattern)
	assert.Len(t, resp.Options, 4)
	// The NULL revenue row is filtered out.
	assert.Len(t, resp.Rows, 3)
}

func TestIntegration_DiscoverOneManyUsesAbsoluteValues(t *testing.T) {
	_, vis := newPostgresStack(t)

	resp, err := vis.Discover(context.Background(), models.DiscoveryRequest{
		TableNames:      []string{"employee"},
		FullColumnNames: []string{"employee.employee_id", "employee.store_id", "employee.salary"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PatternOneMany, resp.Pattern)
	require.Len(t, resp.Rows, 3)
	for _, row := range resp.Rows {
		salary, _ := row.Get("salary")
		assert.GreaterOrEqual(t, salary.(float64), 0.0)
	}
	first, _ := resp.Rows[0].Get("salary")
	assert.InDelta(t, 4100.0, first, 0.001)
}

func TestIntegration_GroupedRowsNeverExceedRegular(t *testing.T) {
	_, vis := newPostgresStack(t)
	req := models.ExplorationDataRequest{
		TableNames:      []string{"film_actor"},
		FullColumnNames: []string{"film_actor.actor_id", "film_actor.film_id", "film_actor.screen_time"},
	}

	req.Pattern = string(models.PatternWeak)
	grouped, err := vis.FetchForPattern(context.Background(), req)
	require.NoError(t, err)

	req.Pattern = string(models.PatternNone)
	regular, err := vis.FetchForPattern(context.Background(), req)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(grouped), len(regular))
}
