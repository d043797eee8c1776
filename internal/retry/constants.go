package retry

import "time"

// Default policy values
const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 1 * time.Second
	DefaultMultiplier  = 2.0
	DefaultMaxDelay    = 30 * time.Second
)

// Log messages
const (
	LogMsgRetrying  = "Remote call failed, retrying"
	LogMsgExhausted = "Remote call failed after all retries"
)
