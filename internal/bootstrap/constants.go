package bootstrap

import "time"

// =============================================================================
// Wiring
// =============================================================================

const (
	// NotifierUsername is the display name of run announcements
	NotifierUsername = "Assignment Sync"

	// HistoryConnectTimeout bounds connecting to and migrating the history database
	HistoryConnectTimeout = 30 * time.Second

	// VerifyTimeout bounds each connectivity check
	VerifyTimeout = 20 * time.Second
)

// Log messages for wiring
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting assignment sync"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgSourceEnabled       = "Source enabled"
	LogMsgHistoryEnabled      = "Run history enabled"
	LogMsgHistoryDisabled     = "Run history disabled, DATABASE_URL is not set"
	LogMsgNotifierEnabled     = "Run notifications enabled"
	LogMsgFieldMapLoaded      = "Field map loaded"
)

// Error messages for wiring
const (
	ErrMsgCalendarService = "failed to create calendar service"
	ErrMsgOpenHistory     = "failed to open run history"
	ErrMsgNotifier        = "failed to create notifier"
	ErrMsgFieldMap        = "failed to load field map"
)

// =============================================================================
// Verify
// =============================================================================

// Check names reported by Verify
const (
	CheckConfig      = "configuration"
	CheckNotionToken = "notion token"
	CheckDatabase    = "notion database"
	CheckFieldMap    = "field map"
	CheckHistory     = "run history database"
)

// Remediation hints per error class
const (
	HintAuth        = "the token was rejected; create a new token and update the environment"
	HintPermission  = "the integration lacks access; share the database with the integration or grant the scope"
	HintNotFound    = "the id does not exist or is not shared with the integration; check the configured id"
	HintTransient   = "the service is unavailable or rate limiting; try again later"
	HintConfig      = "fix the configuration values listed above"
	HintRemote      = "the destination schema cannot be used; check the property types"
	HintUnknown     = "unexpected error; rerun with LOG_LEVEL=debug for details"
	HintMissingBind = "no property matches this field; add one or extend the field map"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgWorkersStopped       = "Workers stopped"
	LogMsgHistoryClosed        = "Run history closed"
)
