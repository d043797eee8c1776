package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgHistoryDisabled = "run history is not configured"
	ErrMsgInvalidLimit    = "limit must be a positive integer"
	ErrMsgRunPending      = "a sync run is already queued"
	ErrMsgNoRunYet        = "no run has finished yet"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate   = "⚠️ SECURITY ALERT: Blocking high request rate"
)

// Abuse detection thresholds
const (
	detectorWindow       = 5 * time.Minute
	failedAuthAlertCount = 5
	maxRequestsPerWindow = 1000
	highRateLogEvery     = 100
	maxRequestBodyBytes  = 1 << 20
	readHeaderTimeout    = 5 * time.Second
	readinessTimeout     = 2 * time.Second
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgSyncTriggered    = "Sync triggered over HTTP"
	LogMsgEncodeFailed     = "Failed to encode response"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Routes
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathMetrics = "/metrics"
	PathAPI     = "/api/v1"
	PathSync    = "/sync"
	PathRuns    = "/runs"
	PathLastRun = "/runs/last"
	PathSwagger = "/swagger/*"
)

// PublicPaths bypass authentication and request logging
var PublicPaths = []string{
	PathHealthz,
	PathReadyz,
	PathMetrics,
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
