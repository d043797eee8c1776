package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/osse101/AssignmentSync_Go/internal/config"
	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		NotionToken:       "secret_token",
		NotionDatabaseID:  "db1",
		NotionBaseURL:     "http://127.0.0.1:1",
		CanvasBaseURL:     "http://127.0.0.1:2",
		CanvasToken:       "canvas-token",
		Timezone:          "UTC",
		Location:          time.UTC,
		DuePrecision:      "date",
		IdentityFieldType: "number",
		SchemaCacheTTL:    time.Minute,
		RetryMaxAttempts:  1,
		RetryMultiplier:   1,
		FutureDays:        30,
	}
}

func calendarTestOptions() []option.ClientOption {
	return []option.ClientOption{
		option.WithEndpoint("http://127.0.0.1:3/"),
		option.WithoutAuthentication(),
	}
}

func TestBuildSources_Order(t *testing.T) {
	cfg := testConfig()
	cfg.CalendarIDs = []string{"school"}
	cfg.IdentityFieldType = config.IdentityTypeRichText

	sources, err := BuildSources(context.Background(), cfg, calendarTestOptions()...)

	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "canvas", sources[0].Name())
	assert.Equal(t, "calendar", sources[1].Name())
}

func TestBuildSources_CalendarOnly(t *testing.T) {
	cfg := testConfig()
	cfg.CanvasBaseURL, cfg.CanvasToken = "", ""
	cfg.CalendarIDs = []string{"school"}
	cfg.IdentityFieldType = config.IdentityTypeRichText

	sources, err := BuildSources(context.Background(), cfg, calendarTestOptions()...)

	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "calendar", sources[0].Name())
}

func TestBuild_WithoutHistory(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), Options{WithHistory: true, WithNotifier: true})

	require.NoError(t, err)
	defer app.Close()
	assert.NotNil(t, app.Driver)
	assert.Nil(t, app.History, "DATABASE_URL is unset")
	assert.Nil(t, app.DB)
	require.Len(t, app.Sources, 1)

	target := app.Target()
	assert.Nil(t, target.DB)
	assert.NotEmpty(t, target.FieldMap)
}

func TestBuild_BadFieldMap(t *testing.T) {
	cfg := testConfig()
	cfg.FieldMapPath = t.TempDir() + "/missing.yaml"

	_, err := Build(context.Background(), cfg, Options{})

	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestBuild_BadWebhook(t *testing.T) {
	cfg := testConfig()
	cfg.DiscordWebhookURL = "https://example.com/not-a-webhook"

	_, err := Build(context.Background(), cfg, Options{WithNotifier: true})

	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestBuild_NotifierOnlyWhenAsked(t *testing.T) {
	cfg := testConfig()
	cfg.DiscordWebhookURL = "https://example.com/not-a-webhook"

	_, err := Build(context.Background(), cfg, Options{})

	assert.NoError(t, err)
}
