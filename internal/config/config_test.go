package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when only required vars set", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, DefaultNotionBaseURL, cfg.NotionBaseURL)
		assert.Equal(t, 2, cfg.PastDays)
		assert.Equal(t, 60, cfg.FutureDays)
		assert.False(t, cfg.IncludeUndated)
		assert.True(t, cfg.SchemaMigrate)
		assert.True(t, cfg.DateOnly())
		assert.Equal(t, IdentityTypeNumber, cfg.IdentityFieldType)
		assert.Equal(t, time.UTC.String(), cfg.Location.String())
		assert.True(t, cfg.HasCanvas())
		assert.False(t, cfg.HasCalendar())
	})

	t.Run("resolves aliases", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("NOTION_API_KEY", "secret_alias")
		t.Setenv("DB_ID", "0123456789abcdef0123456789abcdef")
		t.Setenv("CANVAS_BASE_URL", "https://canvas.example.edu/")
		t.Setenv("CANVAS_TOKEN", "canvas-token")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "secret_alias", cfg.NotionToken)
		assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.NotionDatabaseID)
		assert.Equal(t, "https://canvas.example.edu", cfg.CanvasBaseURL, "trailing slash trimmed")
	})

	t.Run("loads custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("NOTION_TOKEN", "secret")
		t.Setenv("NOTION_DATABASE_ID", "db")
		t.Setenv("GOOGLE_CALENDAR_ID", "school@group.calendar.google.com")
		t.Setenv("SYNC_PAST_DAYS", "7")
		t.Setenv("SYNC_INCLUDE_UNDATED", "true")
		t.Setenv("SYNC_TIMEZONE", "America/New_York")
		t.Setenv("DUE_DATE_PRECISION", "datetime")
		t.Setenv("IDENTITY_FIELD_TYPE", "rich_text")
		t.Setenv("RETRY_MAX_ATTEMPTS", "2")
		t.Setenv("LOG_FORMAT", "JSON")
		t.Setenv("DRY_RUN", "1")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, []string{"school@group.calendar.google.com"}, cfg.CalendarIDs)
		assert.Equal(t, 7, cfg.PastDays)
		assert.True(t, cfg.IncludeUndated)
		assert.Equal(t, "America/New_York", cfg.Location.String())
		assert.False(t, cfg.DateOnly())
		assert.Equal(t, IdentityTypeRichText, cfg.IdentityFieldType)
		assert.Equal(t, 2, cfg.RetryPolicy().MaxAttempts)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.DryRun)
		assert.True(t, cfg.LoggerConfig().IsJSON())
	})

	t.Run("reports every missing variable at once", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load("")

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), "NOTION_TOKEN")
		assert.Contains(t, err.Error(), "NOTION_DATABASE_ID")
		assert.Contains(t, err.Error(), "no source configured")
	})

	t.Run("rejects half a canvas pair", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("NOTION_TOKEN", "secret")
		t.Setenv("NOTION_DATABASE_ID", "db")
		t.Setenv("CANVAS_API_BASE", "https://canvas.example.edu")

		_, err := Load("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), HintCanvasPair)
	})

	t.Run("rejects invalid enum values", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("DUE_DATE_PRECISION", "hourly")
		t.Setenv("SYNC_TIMEZONE", "Mars/Olympus")

		_, err := Load("")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), "DuePrecision")
		assert.Contains(t, err.Error(), "Timezone")
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load("")

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("reports malformed typed values", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("DRY_RUN", "yes")
		t.Setenv("SYNC_PAST_DAYS", "two")
		t.Setenv("RETRY_MAX_ATTEMPTS", "four")

		cfg, err := Load("")

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), `invalid DRY_RUN value "yes"`)
		assert.Contains(t, err.Error(), `invalid SYNC_PAST_DAYS value "two"`)
		assert.Contains(t, err.Error(), `invalid RETRY_MAX_ATTEMPTS value "four"`)
	})

	t.Run("calendar source defaults identity to rich_text", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("GOOGLE_CALENDAR_ID", "primary")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, IdentityTypeRichText, cfg.IdentityFieldType)
	})

	t.Run("rejects number identity with a calendar source", func(t *testing.T) {
		clearEnvVars(t)
		setRequired(t)
		t.Setenv("GOOGLE_CALENDAR_ID", "primary")
		t.Setenv("IDENTITY_FIELD_TYPE", "number")

		_, err := Load("")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfig)
		assert.Contains(t, err.Error(), HintCalendarIdentity)
	})

	t.Run("reads an explicit env file", func(t *testing.T) {
		clearEnvVars(t)
		path := filepath.Join(t.TempDir(), "sync.env")
		content := "NOTION_TOKEN=from-file\nNOTION_DATABASE_ID=db\nGOOGLE_CALENDAR_ID=primary\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("NOTION_TOKEN")
			os.Unsetenv("NOTION_DATABASE_ID")
			os.Unsetenv("GOOGLE_CALENDAR_ID")
		})

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.NotionToken)
	})

	t.Run("missing env file is a config error", func(t *testing.T) {
		clearEnvVars(t)

		_, err := Load(filepath.Join(t.TempDir(), "absent.env"))

		assert.ErrorIs(t, err, domain.ErrConfig)
	})
}

func TestValidateServe(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.ValidateServe(), domain.ErrConfig)

	cfg.APIKey = "k"
	assert.NoError(t, cfg.ValidateServe())
}

func TestWindow(t *testing.T) {
	cfg := &Config{PastDays: 2, FutureDays: 60}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	w := cfg.Window(now)

	assert.Equal(t, time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), w.End)
	assert.False(t, w.IncludeUndated)
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NOTION_TOKEN", "secret")
	t.Setenv("NOTION_DATABASE_ID", "0123456789abcdef0123456789abcdef")
	t.Setenv("CANVAS_API_BASE", "https://canvas.example.edu")
	t.Setenv("CANVAS_API_TOKEN", "canvas-token")
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	var envVars []string
	for _, group := range [][]string{EnvNotionToken, EnvNotionDatabaseID, EnvCanvasBaseURL, EnvCanvasToken} {
		envVars = append(envVars, group...)
	}
	envVars = append(envVars,
		EnvNotionBaseURL, EnvCalendarIDs, EnvPastDays, EnvFutureDays, EnvIncludeUndated,
		EnvTimezone, EnvDuePrecision, EnvIdentityFieldType, EnvSchemaMigrate, EnvRetryMaxAttempts,
		EnvLogLevel, EnvLogFormat, EnvDryRun, EnvPort, EnvAPIKey, EnvEnvironment,
	)

	for _, key := range envVars {
		os.Unsetenv(key)
	}
}
