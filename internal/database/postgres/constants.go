package postgres

// Run history tables
const (
	tableRuns     = "sync_runs"
	tableFailures = "sync_run_failures"
)

// Column lists
var (
	runColumns = []string{
		"run_id", "started_at", "finished_at", "sources", "dry_run",
		"processed", "created", "updated", "skipped", "failed", "error",
	}
	failureColumns = []string{"run_id", "source", "source_id", "title", "error"}
)

// Error messages
const (
	ErrMsgInvalidRunID   = "invalid run id"
	ErrMsgBuildQuery     = "failed to build query"
	ErrMsgSaveRun        = "failed to save run"
	ErrMsgListRuns       = "failed to list runs"
	ErrMsgCleanupRuns    = "failed to clean up runs"
	ErrMsgBeginTx        = "failed to begin transaction"
	ErrMsgCommitTx       = "failed to commit transaction"
	ErrMsgNegativeRetain = "retention days must not be negative"
)

// Log messages
const (
	LogMsgRollbackFailed = "Failed to roll back run history transaction"
)
