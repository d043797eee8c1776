package schema

// Cache settings
const (
	cacheSize = 8
)

// Log messages
const (
	LogMsgSchemaFetched     = "Destination schema fetched"
	LogMsgSchemaCacheHit    = "Destination schema served from cache"
	LogMsgSchemaFetchFailed = "Failed to fetch destination schema"
)
