package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type runLogRepository struct {
	db *pgxpool.Pool
}

// NewRunLogRepository creates a PostgreSQL run history repository
func NewRunLogRepository(db *pgxpool.Pool) repository.RunLog {
	return &runLogRepository{db: db}
}

// SaveRun stores the run and its failures in one transaction. Saving the
// same run id twice replaces the earlier row.
func (r *runLogRepository) SaveRun(ctx context.Context, s *domain.RunSummary) error {
	runID, err := uuid.Parse(s.RunID)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidRunID, s.RunID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	defer rollback(ctx, tx)

	sources := s.Sources
	if sources == nil {
		sources = []string{}
	}
	insertRun := psql.Insert(tableRuns).
		Columns(runColumns...).
		Values(runID, s.StartedAt, s.FinishedAt, sources, s.DryRun,
			s.Processed, s.Created, s.Updated, s.Skipped, s.Failed, s.Err).
		Suffix(`ON CONFLICT (run_id) DO UPDATE SET
			finished_at = EXCLUDED.finished_at, sources = EXCLUDED.sources,
			dry_run = EXCLUDED.dry_run, processed = EXCLUDED.processed,
			created = EXCLUDED.created, updated = EXCLUDED.updated,
			skipped = EXCLUDED.skipped, failed = EXCLUDED.failed, error = EXCLUDED.error`)
	if err := execBuilder(ctx, tx, insertRun); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSaveRun, err)
	}

	deleteFailures := psql.Delete(tableFailures).Where(sq.Eq{"run_id": runID})
	if err := execBuilder(ctx, tx, deleteFailures); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSaveRun, err)
	}

	if len(s.Failures) > 0 {
		insertFailures := psql.Insert(tableFailures).Columns(failureColumns...)
		for _, f := range s.Failures {
			insertFailures = insertFailures.Values(runID, f.Source, f.SourceID, f.Title, f.Error)
		}
		if err := execBuilder(ctx, tx, insertFailures); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgSaveRun, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitTx, err)
	}
	return nil
}

// ListRuns retrieves runs based on filter criteria, newest first
func (r *runLogRepository) ListRuns(ctx context.Context, filter repository.RunLogFilter) ([]repository.RunLogEntry, error) {
	q := psql.Select(runColumns...).From(tableRuns).OrderBy("started_at DESC")
	if filter.Since != nil {
		q = q.Where(sq.GtOrEq{"started_at": *filter.Since})
	}
	if filter.OnlyFailed {
		q = q.Where(sq.Or{sq.Gt{"failed": 0}, sq.NotEq{"error": ""}})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildQuery, err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListRuns, err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// CleanupOldRuns removes runs started more than retentionDays ago
func (r *runLogRepository) CleanupOldRuns(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 0 {
		return 0, fmt.Errorf("%s: %d", ErrMsgNegativeRetain, retentionDays)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	sql, args, err := psql.Delete(tableRuns).Where(sq.Lt{"started_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgBuildQuery, err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCleanupRuns, err)
	}
	return tag.RowsAffected(), nil
}

func execBuilder(ctx context.Context, tx pgx.Tx, b sq.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgBuildQuery, err)
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func scanRuns(rows pgx.Rows) ([]repository.RunLogEntry, error) {
	var runs []repository.RunLogEntry
	for rows.Next() {
		var (
			e     repository.RunLogEntry
			runID uuid.UUID
		)
		err := rows.Scan(
			&runID,
			&e.StartedAt,
			&e.FinishedAt,
			&e.Sources,
			&e.DryRun,
			&e.Processed,
			&e.Created,
			&e.Updated,
			&e.Skipped,
			&e.Failed,
			&e.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgListRuns, err)
		}
		e.RunID = runID.String()
		runs = append(runs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListRuns, err)
	}
	return runs, nil
}
