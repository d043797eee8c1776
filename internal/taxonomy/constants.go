package taxonomy

// Log messages
const (
	LogMsgOptionsAdded      = "Added select options"
	LogMsgOptionsDryRun     = "Would add select options"
	LogMsgOptionsForbidden  = "Integration cannot edit the schema, skipping option creation"
	LogMsgOptionsFailed     = "Failed to add select options"
	LogMsgSchemaRefreshFail = "Failed to refresh schema after adding options"
)

const operationEnsureOptions = "ensure_options"
