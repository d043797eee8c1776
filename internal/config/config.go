package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
	"github.com/osse101/AssignmentSync_Go/internal/retry"
)

// Config holds the application configuration
type Config struct {
	// Destination
	NotionToken      string `validate:"required"`
	NotionDatabaseID string `validate:"required"`
	NotionBaseURL    string `validate:"required,url"`

	// Sources
	CanvasBaseURL     string   `validate:"omitempty,url"`
	CanvasToken       string   `validate:"required_with=CanvasBaseURL"`
	CalendarIDs       []string `validate:"dive,required"`
	GoogleCredentials string

	// Sync window and rendering
	PastDays          int            `validate:"gte=0"`
	FutureDays        int            `validate:"gte=0"`
	Timezone          string         `validate:"required,timezone"`
	Location          *time.Location `validate:"-"`
	DuePrecision      string         `validate:"oneof=date datetime"`
	IdentityFieldType string         `validate:"oneof=number rich_text"`
	SchemaCacheTTL    time.Duration  `validate:"gt=0"`
	IncludeUndated    bool
	SchemaMigrate     bool
	FieldMapPath      string
	DryRun            bool

	// Retry policy
	RetryMaxAttempts int           `validate:"gte=1,lte=10"`
	RetryBaseDelay   time.Duration `validate:"gte=0"`
	RetryMultiplier  float64       `validate:"gte=1"`
	RetryMaxDelay    time.Duration `validate:"gte=0"`

	// Logging
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// Run history and notifications
	DatabaseURL       string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	DiscordWebhookURL string `validate:"omitempty,url"`

	// Serve mode
	Port         int           `validate:"gte=0,lte=65535"`
	APIKey       string        // API key for authentication
	SyncInterval time.Duration `validate:"gt=0"`

	// malformed values met while reading the environment
	parseProblems []string
}

// Load reads an optional .env file, then the environment.
// envFile may be empty to use ./.env when present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("%w: cannot read env file %s: %v", domain.ErrConfig, envFile, err)
		}
	} else {
		// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
		_ = godotenv.Load()
	}

	env := &envReader{}
	cfg := &Config{
		NotionToken:       getEnvAny(EnvNotionToken, ""),
		NotionDatabaseID:  normalizeDatabaseID(getEnvAny(EnvNotionDatabaseID, "")),
		NotionBaseURL:     strings.TrimRight(getEnv(EnvNotionBaseURL, DefaultNotionBaseURL), "/"),
		CanvasBaseURL:     strings.TrimRight(getEnvAny(EnvCanvasBaseURL, ""), "/"),
		CanvasToken:       getEnvAny(EnvCanvasToken, ""),
		CalendarIDs:       splitList(getEnv(EnvCalendarIDs, "")),
		GoogleCredentials: getEnv(EnvGoogleCredentials, DefaultGoogleCredentials),
		PastDays:          env.asInt(EnvPastDays, DefaultPastDays),
		FutureDays:        env.asInt(EnvFutureDays, DefaultFutureDays),
		IncludeUndated:    env.asBool(EnvIncludeUndated, false),
		Timezone:          getEnv(EnvTimezone, DefaultTimezone),
		DuePrecision:      strings.ToLower(getEnv(EnvDuePrecision, DefaultDuePrecision)),
		IdentityFieldType: strings.ToLower(getEnv(EnvIdentityFieldType, "")),
		SchemaMigrate:     env.asBool(EnvSchemaMigrate, true),
		SchemaCacheTTL:    env.asDuration(EnvSchemaCacheTTL, DefaultSchemaCacheTTL),
		FieldMapPath:      getEnv(EnvFieldMapPath, ""),
		DryRun:            env.asBool(EnvDryRun, false),
		RetryMaxAttempts:  env.asInt(EnvRetryMaxAttempts, DefaultRetryMaxAttempts),
		RetryBaseDelay:    env.asDuration(EnvRetryBaseDelay, DefaultRetryBaseDelay),
		RetryMultiplier:   env.asFloat(EnvRetryMultiplier, DefaultRetryMultiplier),
		RetryMaxDelay:     env.asDuration(EnvRetryMaxDelay, DefaultRetryMaxDelay),
		LogLevel:          strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:            getEnv(EnvLogDir, ""),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:       getEnv(EnvServiceName, DefaultServiceName),
		Version:           getEnv(EnvVersion, DefaultVersion),
		DatabaseURL:       getEnv(EnvDatabaseURL, ""),
		DBMaxConns:        env.asInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: env.asDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: env.asDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),
		DiscordWebhookURL: getEnv(EnvDiscordWebhookURL, ""),
		APIKey:            getEnv(EnvAPIKey, ""),
		SyncInterval:      env.asDuration(EnvSyncInterval, DefaultSyncInterval),
	}

	cfg.Port = env.asInt(EnvPort, DefaultPort)
	if cfg.IdentityFieldType == "" {
		cfg.IdentityFieldType = defaultIdentityType(cfg)
	}
	cfg.parseProblems = env.problems

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", domain.ErrConfig, EnvTimezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Validate reports every configuration problem at once, wrapped in domain.ErrConfig
func (c *Config) Validate() error {
	problems := append([]string(nil), c.parseProblems...)

	if c.NotionToken == "" {
		problems = append(problems, missing(EnvNotionToken[0], HintNotionToken))
	}
	if c.NotionDatabaseID == "" {
		problems = append(problems, missing(EnvNotionDatabaseID[0], HintNotionDatabaseID))
	}
	if (c.CanvasBaseURL == "") != (c.CanvasToken == "") {
		problems = append(problems, HintCanvasPair)
	}
	if !c.HasCanvas() && !c.HasCalendar() {
		problems = append(problems, "no source configured ("+HintSource+")")
	}
	if c.HasCalendar() && c.IdentityFieldType == IdentityTypeNumber {
		problems = append(problems, HintCalendarIdentity)
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				// required fields were already reported with a hint
				if fe.Tag() == "required" || fe.Tag() == "required_with" {
					continue
				}
				problems = append(problems, fmt.Sprintf("%s failed %q validation (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateServe checks the extra settings needed by the HTTP server
func (c *Config) ValidateServe() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: %s", domain.ErrConfig, missing(EnvAPIKey, HintAPIKey))
	}
	return nil
}

// HasCanvas reports whether the Canvas source is configured
func (c *Config) HasCanvas() bool {
	return c.CanvasBaseURL != "" && c.CanvasToken != ""
}

// HasCalendar reports whether the calendar source is configured
func (c *Config) HasCalendar() bool {
	return len(c.CalendarIDs) > 0
}

// DateOnly reports whether due dates are written without a time component
func (c *Config) DateOnly() bool {
	return c.DuePrecision != PrecisionDateTime
}

// RetryPolicy builds the outbound retry policy
func (c *Config) RetryPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	p.MaxAttempts = c.RetryMaxAttempts
	p.BaseDelay = c.RetryBaseDelay
	p.Multiplier = c.RetryMultiplier
	p.MaxDelay = c.RetryMaxDelay
	return p
}

// LoggerConfig maps the logging settings onto the logger package
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, c.LogDir, c.LogLevel == "debug")
}

// Window returns the due range for a run starting at now
func (c *Config) Window(now time.Time) domain.Window {
	return domain.NewWindow(now, c.PastDays, c.FutureDays, c.IncludeUndated)
}

func missing(name, hint string) string {
	return fmt.Sprintf("%s is not set (%s)", name, hint)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAny returns the first non-empty variable among keys
func getEnvAny(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return defaultValue
}

// envReader parses typed variables and records every malformed value.
// Unset or blank variables take their default.
type envReader struct {
	problems []string
}

func (r *envReader) lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (r *envReader) invalid(key, value, want string) {
	r.problems = append(r.problems, fmt.Sprintf("invalid %s value %q (want %s)", key, value, want))
}

func (r *envReader) asInt(key string, defaultValue int) int {
	raw, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		r.invalid(key, raw, "an integer")
		return defaultValue
	}
	return value
}

func (r *envReader) asFloat(key string, defaultValue float64) float64 {
	raw, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.invalid(key, raw, "a number")
		return defaultValue
	}
	return value
}

func (r *envReader) asBool(key string, defaultValue bool) bool {
	raw, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		r.invalid(key, raw, "true or false")
		return defaultValue
	}
	return value
}

func (r *envReader) asDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		r.invalid(key, raw, "a duration such as 30s or 1h")
		return defaultValue
	}
	return value
}

// defaultIdentityType picks a property type every configured source id fits:
// calendar event ids are not numeric.
func defaultIdentityType(c *Config) string {
	if c.HasCalendar() {
		return IdentityTypeRichText
	}
	return DefaultIdentityFieldType
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeDatabaseID accepts a bare id, a dashed UUID, or a full database URL
func normalizeDatabaseID(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	// URLs end in "Title-<32 hex>"
	compact := strings.ReplaceAll(raw, "-", "")
	if len(compact) > 32 {
		compact = compact[len(compact)-32:]
	}
	if len(compact) == 32 && isHex(compact) {
		return compact
	}
	return raw
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
