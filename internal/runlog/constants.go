package runlog

import "time"

// Query limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// DefaultRetentionDays is how long run history is kept
const DefaultRetentionDays = 90

// CleanupInterval is how often the cleanup job runs in serve mode
const CleanupInterval = 24 * time.Hour

// Log messages - service events
const (
	LogMsgRunSaved      = "Run saved to history"
	LogMsgRunSaveFailed = "Failed to save run to history"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting run history cleanup job"
	LogMsgCleanupJobFailed    = "Run history cleanup failed"
	LogMsgCleanupJobCompleted = "Run history cleanup completed"
)

// Log field keys
const (
	LogFieldRunID         = "run_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)
