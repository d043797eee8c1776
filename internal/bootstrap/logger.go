package bootstrap

import (
	"io"
	"log/slog"

	"github.com/osse101/AssignmentSync_Go/internal/config"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// SetupLogger installs the process logger described by cfg and logs the
// startup banner. The caller must close the result to flush the log file.
func SetupLogger(cfg *config.Config) io.Closer {
	closer := logger.InitLogger(cfg.LoggerConfig())

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat, "dir", cfg.LogDir)
	slog.Info(LogMsgStarting, "version", cfg.Version, "environment", cfg.Environment)
	slog.Debug(LogMsgConfigurationLoaded,
		"database_id", cfg.NotionDatabaseID,
		"canvas", cfg.HasCanvas(),
		"calendars", len(cfg.CalendarIDs),
		"timezone", cfg.Timezone,
		"past_days", cfg.PastDays,
		"future_days", cfg.FutureDays,
		"dry_run", cfg.DryRun)
	return closer
}
