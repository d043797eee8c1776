package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/AssignmentSync_Go/internal/config"
	"github.com/osse101/AssignmentSync_Go/internal/database"
	"github.com/osse101/AssignmentSync_Go/internal/database/postgres"
	"github.com/osse101/AssignmentSync_Go/internal/runlog"
)

// OpenHistory connects the run history database, applies migrations and
// returns the history service. Both results are nil when DATABASE_URL is unset.
func OpenHistory(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, runlog.Service, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, HistoryConnectTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgOpenHistory, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgOpenHistory, err)
	}

	return pool, runlog.NewService(postgres.NewRunLogRepository(pool)), nil
}
