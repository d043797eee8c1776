package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

func TestValidateEnv_MissingRequired(t *testing.T) {
	clearEnvVars(t)

	err := ValidateEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "NOTION_TOKEN|NOTION_API_KEY")
	assert.Contains(t, err.Error(), "NOTION_DATABASE_ID|DATABASE_ID")
}

func TestValidateEnv_AliasSatisfiesGroup(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TOKEN", "secret")
	t.Setenv("NOTION_DB", "db")

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureValues(t *testing.T) {
	clearEnvVars(t)
	setRequired(t)
	t.Setenv("CANVAS_API_BASE", "http://canvas.local")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "CANVAS_API_BASE")
	assert.Contains(t, warnings[1], "API_KEY")
}
