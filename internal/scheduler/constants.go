package scheduler

// Log messages
const (
	LogMsgTickSkipped = "Scheduled job skipped, previous run still pending"
)
