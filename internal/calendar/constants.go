package calendar

// Source settings
const (
	SourceName    = "calendar"
	ServiceName   = "google_calendar"
	maxResults    = 2500
	orderByStart  = "startTime"
	statusCancel  = "cancelled"
	dateLayout    = "2006-01-02"
	teacherKey    = "Teacher"
	opGetCalendar = "calendar get"
	opListEvents  = "calendar list events"
)

// Log messages
const (
	LogMsgEventsListed   = "Listed calendar events"
	LogMsgEventSkipped   = "Skipping event without a start"
	LogMsgTeacherLookup  = "Teacher lookup failed"
	LogMsgEventCancelled = "Skipping cancelled event"
)
