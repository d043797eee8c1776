package runlog

import (
	"context"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
)

// Service handles run history business logic. It satisfies repository.RunLog
// so the sync driver can record runs through it.
type Service interface {
	repository.RunLog

	// Recent returns up to limit runs, newest first
	Recent(ctx context.Context, limit int) ([]repository.RunLogEntry, error)
}

type service struct {
	repo repository.RunLog
}

// NewService creates a new run history service
func NewService(repo repository.RunLog) Service {
	return &service{repo: repo}
}

// SaveRun records a finished run
func (s *service) SaveRun(ctx context.Context, summary *domain.RunSummary) error {
	log := logger.FromContext(ctx)
	if err := s.repo.SaveRun(ctx, summary); err != nil {
		log.Error(LogMsgRunSaveFailed, LogFieldError, err, LogFieldRunID, summary.RunID)
		return err
	}
	log.Debug(LogMsgRunSaved, LogFieldRunID, summary.RunID)
	return nil
}

// ListRuns retrieves runs with the limit clamped to [1, MaxListLimit]
func (s *service) ListRuns(ctx context.Context, filter repository.RunLogFilter) ([]repository.RunLogEntry, error) {
	filter.Limit = clampLimit(filter.Limit)
	return s.repo.ListRuns(ctx, filter)
}

// Recent returns the latest runs
func (s *service) Recent(ctx context.Context, limit int) ([]repository.RunLogEntry, error) {
	return s.ListRuns(ctx, repository.RunLogFilter{Limit: limit})
}

// CleanupOldRuns removes runs older than the retention period
func (s *service) CleanupOldRuns(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldRuns(ctx, retentionDays)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
