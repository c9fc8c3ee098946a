package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdus2609/vizor/internal/apperrors"
	"github.com/Abdus2609/vizor/internal/catalog"
)

func TestResolveSelection_CatalogOrderAndDedup(t *testing.T) {
	snap := fixtureSnapshot()

	sel, err := ResolveSelection(snap, []string{"film", "film"}, []string{"film.length", "film.film_id", "film.length"})
	require.NoError(t, err)

	assert.Equal(t, "film", sel.Table.TableName)
	assert.Equal(t, []string{"film_id", "length"}, columnNames(sel.Columns))
}

func TestResolveSelection_UnknownColumnSuggestsCloseMatch(t *testing.T) {
	snap := fixtureSnapshot()

	_, err := ResolveSelection(snap, []string{"film"}, []string{"film.film_id", "film.titel"})

	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"film.titel"}, selErr.Unresolved)
	assert.Contains(t, selErr.Suggestions["film.titel"], "film.title")
}

func TestResolveSelection_ColumnFromUnselectedTable(t *testing.T) {
	snap := fixtureSnapshot()

	_, err := ResolveSelection(snap, []string{"film"}, []string{"film.film_id", "store.budget"})

	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"store.budget"}, selErr.Unresolved)
}

func TestResolveSelection_UnqualifiedName(t *testing.T) {
	snap := fixtureSnapshot()

	_, err := ResolveSelection(snap, []string{"film"}, []string{"length"})

	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, []string{"length"}, selErr.Unresolved)
}

func TestResolveSelection_UnknownTable(t *testing.T) {
	snap := fixtureSnapshot()

	_, err := ResolveSelection(snap, []string{"flim"}, []string{"flim.film_id"})

	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, "unknown tables", selErr.Reason)
	assert.Contains(t, selErr.Suggestions["flim"], "film")
}

func TestResolveSelection_MultipleTables(t *testing.T) {
	snap := fixtureSnapshot()

	_, err := ResolveSelection(snap, []string{"film", "store"}, []string{"film.film_id", "store.budget"})

	var multi *apperrors.MultiTableUnsupportedError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, []string{"film", "store"}, multi.Tables)
}

func TestResolveSelection_EmptyInputs(t *testing.T) {
	snap := fixtureSnapshot()

	var selErr *apperrors.SelectionError
	_, err := ResolveSelection(snap, nil, []string{"film.film_id"})
	require.ErrorAs(t, err, &selErr)

	_, err = ResolveSelection(snap, []string{"film"}, nil)
	require.ErrorAs(t, err, &selErr)
}

func TestResolveSelection_EmptyCatalog(t *testing.T) {
	snap := catalog.NewStore().Current()

	_, err := ResolveSelection(snap, []string{"film"}, []string{"film.film_id"})

	var selErr *apperrors.SelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Empty(t, selErr.Suggestions["film"])
}

func TestSelection_Partitions(t *testing.T) {
	snap := fixtureSnapshot()
	sel := mustSelect(snap, "store_sales", "store_id", "month", "revenue")

	assert.Equal(t, []string{"store_id", "month"}, columnNames(sel.PrimaryKeys()))
	assert.Equal(t, []string{"store_id"}, columnNames(sel.ForeignKeys()))
	assert.Empty(t, sel.PureForeignKeys())
	assert.Equal(t, []string{"month"}, columnNames(sel.NonForeignPrimaryKeys()))
	assert.Equal(t, []string{"store_id"}, columnNames(sel.BothPrimaryAndForeign()))
	assert.Equal(t, []string{"revenue"}, columnNames(sel.Attributes()))
}
