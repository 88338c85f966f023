//go:build postgres_integration

package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribution-planner/internal/platform/db"
	"distribution-planner/internal/ports"
)

func TestSQLSolutionRepositoryRoundTrip(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.OpenPostgres(url)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, InitPostgresSchema(ctx, conn))

	repo := NewSQLSolutionRepository(conn)
	id := uuid.NewString()
	sol := sampleSolution(id, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Save(ctx, "integration", sol))
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM solutions WHERE id = $1`, id) })

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sol, got)

	list, err := repo.List(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
