package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RequiredEnvVars lists the alias groups that must resolve to a value
var RequiredEnvVars = [][]string{
	EnvNotionToken,
	EnvNotionDatabaseID,
}

// ValidateEnv checks that all required environment variables are set.
// Every missing group is reported in one error.
func ValidateEnv() error {
	var missingVars []string
	for _, group := range RequiredEnvVars {
		if getEnvAny(group, "") == "" {
			missingVars = append(missingVars, strings.Join(group, "|"))
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("%w: missing required environment variables: %s", domain.ErrConfig, strings.Join(missingVars, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using example values)
func ValidateEnvWithWarnings() ([]string, error) {
	// First do the critical validation
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if strings.HasPrefix(getEnvAny(EnvCanvasBaseURL, ""), "http://") {
		warnings = append(warnings, "CANVAS_API_BASE uses plain http - the token will be sent unencrypted")
	}

	if os.Getenv(EnvAPIKey) == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - "+HintAPIKey)
	}

	if getEnvAny(EnvCanvasBaseURL, "") == "" && os.Getenv(EnvCalendarIDs) == "" {
		warnings = append(warnings, "no source configured - "+HintSource)
	}

	return warnings, nil
}
