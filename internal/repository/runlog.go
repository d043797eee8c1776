package repository

import (
	"context"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// RunLog defines the interface for run history storage
type RunLog interface {
	// SaveRun stores a finished run and its per-record failures
	SaveRun(ctx context.Context, summary *domain.RunSummary) error

	// ListRuns retrieves runs based on filter criteria, newest first
	ListRuns(ctx context.Context, filter RunLogFilter) ([]RunLogEntry, error)

	// CleanupOldRuns removes runs older than the specified number of days
	CleanupOldRuns(ctx context.Context, retentionDays int) (int64, error)
}

// RunLogEntry is one stored run
type RunLogEntry struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Sources    []string  `json:"sources"`
	DryRun     bool      `json:"dry_run"`
	Processed  int       `json:"processed"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
}

// RunLogFilter filters runs for queries
type RunLogFilter struct {
	Since      *time.Time
	OnlyFailed bool
	Limit      int
}
