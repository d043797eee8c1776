package syncer

// Log messages
const (
	LogMsgRunStarted        = "Sync run started"
	LogMsgRunFinished       = "Sync run finished"
	LogMsgRunAborted        = "Sync run aborted"
	LogMsgSourceStarted     = "Syncing source"
	LogMsgCollectionStarted = "Syncing collection"
	LogMsgCollectionFailed  = "Failed to list collection items"
	LogMsgCollectionsFailed = "Failed to list collections"
	LogMsgRecordFailed      = "Failed to sync record"
	LogMsgRecordSkipped     = "Record outside sync window"
	LogMsgFieldOmitted      = "Field omitted from payload"
	LogMsgTaxonomyFailed    = "Failed to reconcile select options"
	LogMsgUnboundFields     = "Fields without a destination property"
	LogMsgUsersFailed       = "Failed to list workspace users, people fields will be omitted"
	LogMsgRunLogFailed      = "Failed to record run history"
	LogMsgNotifyFailed      = "Failed to send run notification"
)

// collectionFailureTitle labels failures that are not tied to a single record
const collectionFailureTitle = "(collection)"
