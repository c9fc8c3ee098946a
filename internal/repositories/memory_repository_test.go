package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdus2609/vizor/internal/models"
)

func TestMemoryConnectionHistory_DeduplicatesAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryConnectionHistory()

	require.NoError(t, repo.Remember(ctx, models.ConnectionDetails{Host: "db2", Port: "5432", DatabaseName: "sakila", Username: "bob", Password: "secret"}))
	require.NoError(t, repo.Remember(ctx, models.ConnectionDetails{Host: "db1", Port: "5432", DatabaseName: "sakila", Username: "alice"}))

	opts, err := repo.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, opts.Usernames)
	assert.Equal(t, []string{"db1", "db2"}, opts.Hosts)
	assert.Equal(t, []string{"5432"}, opts.Ports)
	assert.Equal(t, []string{"sakila"}, opts.Databases)
}

func TestMemoryConnectionHistory_EmptyOptions(t *testing.T) {
	opts, err := NewMemoryConnectionHistory().Options(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opts.Hosts)
	assert.NotNil(t, opts.Hosts)
}

func TestMemoryQueryHistory_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryQueryHistoryRepository(2)

	for _, q := range []string{"q1", "q2", "q3"} {
		require.NoError(t, repo.Create(ctx, &models.QueryHistory{QueryText: q, Success: true}))
	}

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "q3", entries[0].QueryText)
	assert.Equal(t, "q2", entries[1].QueryText)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
	assert.False(t, entries[0].ExecutedAt.IsZero())
}
