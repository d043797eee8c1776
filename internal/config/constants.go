package config

import "time"

// Environment variable names. Lists are alias groups; the first set one wins.
var (
	EnvNotionToken      = []string{"NOTION_TOKEN", "NOTION_API_KEY", "API_TOKEN", "TOKEN"}
	EnvNotionDatabaseID = []string{"NOTION_DATABASE_ID", "DATABASE_ID", "DB_ID", "NOTION_DB"}
	EnvCanvasBaseURL    = []string{"CANVAS_API_BASE", "CANVAS_BASE_URL"}
	EnvCanvasToken      = []string{"CANVAS_API_TOKEN", "CANVAS_TOKEN"}
)

const (
	EnvNotionBaseURL     = "NOTION_API_BASE"
	EnvCalendarIDs       = "GOOGLE_CALENDAR_ID"
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvPastDays          = "SYNC_PAST_DAYS"
	EnvFutureDays        = "SYNC_FUTURE_DAYS"
	EnvIncludeUndated    = "SYNC_INCLUDE_UNDATED"
	EnvTimezone          = "SYNC_TIMEZONE"
	EnvDuePrecision      = "DUE_DATE_PRECISION"
	EnvIdentityFieldType = "IDENTITY_FIELD_TYPE"
	EnvSchemaMigrate     = "SCHEMA_MIGRATE"
	EnvSchemaCacheTTL    = "SCHEMA_CACHE_TTL"
	EnvRetryMaxAttempts  = "RETRY_MAX_ATTEMPTS"
	EnvRetryBaseDelay    = "RETRY_BASE_DELAY"
	EnvRetryMultiplier   = "RETRY_MULTIPLIER"
	EnvRetryMaxDelay     = "RETRY_MAX_DELAY"
	EnvFieldMapPath      = "FIELD_MAP_PATH"
	EnvDryRun            = "DRY_RUN"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogDir            = "LOG_DIR"
	EnvEnvironment       = "ENVIRONMENT"
	EnvServiceName       = "SERVICE_NAME"
	EnvVersion           = "VERSION"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvDiscordWebhookURL = "DISCORD_WEBHOOK_URL"
	EnvPort              = "PORT"
	EnvAPIKey            = "API_KEY"
	EnvSyncInterval      = "SYNC_INTERVAL"
)

// Defaults
const (
	DefaultNotionBaseURL     = "https://api.notion.com"
	DefaultGoogleCredentials = "credentials.json"
	DefaultPastDays          = 2
	DefaultFutureDays        = 60
	DefaultTimezone          = "UTC"
	DefaultDuePrecision      = PrecisionDate
	DefaultIdentityFieldType = IdentityTypeNumber
	DefaultSchemaCacheTTL    = 10 * time.Minute
	DefaultRetryMaxAttempts  = 4
	DefaultRetryBaseDelay    = 1 * time.Second
	DefaultRetryMultiplier   = 2.0
	DefaultRetryMaxDelay     = 30 * time.Second
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "assignment-sync"
	DefaultVersion           = "dev"
	DefaultDBMaxConns        = 5
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultPort              = 8080
	DefaultSyncInterval      = 1 * time.Hour
)

// Due date precision values
const (
	PrecisionDate     = "date"
	PrecisionDateTime = "datetime"
)

// Identity property types the schema migration may create
const (
	IdentityTypeNumber   = "number"
	IdentityTypeRichText = "rich_text"
)

// Remediation hints attached to missing variables
const (
	HintNotionToken      = "create an internal integration at https://www.notion.so/my-integrations and copy its secret"
	HintNotionDatabaseID = "copy the 32-character id from the database URL and share the database with the integration"
	HintSource           = "set CANVAS_API_BASE and CANVAS_API_TOKEN, or GOOGLE_CALENDAR_ID"
	HintCanvasPair       = "CANVAS_API_BASE and CANVAS_API_TOKEN must be set together"
	HintAPIKey           = "generate one with: openssl rand -hex 32"
	HintCalendarIdentity = "IDENTITY_FIELD_TYPE=number cannot hold calendar event ids; use rich_text"
)
