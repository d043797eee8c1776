package main

import "time"

// Exit codes for CLI commands
const (
	ExitSuccess      = 0 // run finished, possibly with record failures
	ExitFailure      = 1 // run aborted or a check failed
	ExitCommandError = 2 // bad flags or configuration
)

const (
	formatText = "text"
	formatJSON = "json"
)

// shutdownTimeout bounds draining the server and the in-flight run
const shutdownTimeout = 30 * time.Second

// maintenanceWorkers runs housekeeping jobs beside the sync pool
const maintenanceWorkers = 1

// Error messages
const (
	ErrMsgLoadConfig   = "configuration is invalid"
	ErrMsgWire         = "failed to start"
	ErrMsgSyncAborted  = "sync aborted"
	ErrMsgVerifyFailed = "verification failed"
	ErrMsgSchema       = "cannot read the destination schema"
	ErrMsgNoHistory    = "run history is disabled, set DATABASE_URL"
	ErrMsgListRuns     = "failed to list runs"
	ErrMsgServe        = "server failed"
	ErrMsgBadLimit     = "--limit must be positive"
	ErrMsgWriteOutput  = "failed to write output"
)

// Log messages
const (
	LogMsgConfigWarning  = "Configuration warning"
	LogMsgServing        = "Serving"
	LogMsgSignal         = "Received signal, shutting down"
	LogMsgWatcherFailed  = "Field map watcher failed"
	LogMsgCleanupEnabled = "Run history cleanup scheduled"
)
