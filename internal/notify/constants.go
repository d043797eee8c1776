package notify

// Embed colors
const (
	colorSuccess = 0x2ecc71 // green
	colorFailure = 0xe74c3c // red
	colorDryRun  = 0xf1c40f // yellow
	colorPartial = 0xe67e22 // orange
)

// Embed text
const (
	titleSuccess  = "✅ Assignment sync finished"
	titlePartial  = "⚠️ Assignment sync finished with failures"
	titleFailure  = "❌ Assignment sync aborted"
	titleDryRun   = "🧪 Assignment sync dry run"
	footerFormat  = "Run %s"
	moreFailures  = "…and %d more"
	maxFailures   = 10
	maxFieldChars = 1024
	webhookPath   = "/api/webhooks/"
)

// Error messages
const (
	ErrMsgInvalidWebhookURL = "invalid Discord webhook URL"
	ErrMsgWebhookFailed     = "discord webhook failed"
)

// Log messages
const (
	LogMsgNotificationSent = "Run notification sent"
)
