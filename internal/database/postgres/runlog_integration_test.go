package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/AssignmentSync_Go/internal/database"
	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

func setupRunLogDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil {
		t.Skipf("Skipping integration test: postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(ctx, connStr, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func summaryAt(started time.Time, failed int) *domain.RunSummary {
	s := &domain.RunSummary{
		RunID:      uuid.NewString(),
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Sources:    []string{"canvas"},
		Processed:  4,
		Created:    2,
		Updated:    2 - failed,
	}
	for i := 0; i < failed; i++ {
		s.AddFailure(domain.SourceRecord{Source: "canvas", SourceID: "501", Title: "Essay 1"}, domain.ErrValidation)
	}
	return s
}

func TestRunLogRepository_Integration(t *testing.T) {
	pool := setupRunLogDB(t)
	repo := NewRunLogRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	old := summaryAt(now.AddDate(0, 0, -40), 0)
	clean := summaryAt(now.Add(-2*time.Hour), 0)
	failing := summaryAt(now.Add(-time.Hour), 1)
	failing.Err = "auth: token rejected"

	for _, s := range []*domain.RunSummary{old, clean, failing} {
		require.NoError(t, repo.SaveRun(ctx, s))
	}

	t.Run("newest first", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, repository.RunLogFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, failing.RunID, runs[0].RunID)
		assert.Equal(t, old.RunID, runs[2].RunID)
		assert.Equal(t, []string{"canvas"}, runs[0].Sources)
		assert.Equal(t, "auth: token rejected", runs[0].Error)
		assert.True(t, runs[1].StartedAt.Equal(clean.StartedAt))
	})

	t.Run("filters", func(t *testing.T) {
		since := now.AddDate(0, 0, -1)
		runs, err := repo.ListRuns(ctx, repository.RunLogFilter{Since: &since, Limit: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, failing.RunID, runs[0].RunID)

		runs, err = repo.ListRuns(ctx, repository.RunLogFilter{OnlyFailed: true})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, 1, runs[0].Failed)
	})

	t.Run("save is idempotent per run id", func(t *testing.T) {
		clean.Updated = 3
		require.NoError(t, repo.SaveRun(ctx, clean))
		require.NoError(t, repo.SaveRun(ctx, failing))

		runs, err := repo.ListRuns(ctx, repository.RunLogFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 3)

		var failures int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM sync_run_failures`).Scan(&failures))
		assert.Equal(t, 1, failures)
	})

	t.Run("cleanup", func(t *testing.T) {
		deleted, err := repo.CleanupOldRuns(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		_, err = repo.CleanupOldRuns(ctx, -1)
		assert.Error(t, err)
	})

	t.Run("rejects malformed run id", func(t *testing.T) {
		err := repo.SaveRun(ctx, &domain.RunSummary{RunID: "not-a-uuid"})
		assert.ErrorContains(t, err, ErrMsgInvalidRunID)
	})
}
