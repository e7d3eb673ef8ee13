package migrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"solana-wallet-forensics/internal/storage/postgres"
)

func TestRunPostgresMigrations_AppliesOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("forensics"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, dsn, 2)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	files, err := migrationFiles()
	require.NoError(t, err)

	applied, err := RunPostgresMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, applied, len(files))
	assert.Equal(t, "001_analyses", applied[0])

	var exists bool
	err = pool.QueryRow(ctx, `SELECT to_regclass('public.analyses') IS NOT NULL`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "analyses table should exist")

	again, err := RunPostgresMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again)
}
