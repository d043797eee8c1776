package worker

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Job queue full, dropping job"
)

// Log Messages - Sync Job
const (
	LogMsgSyncJobStarting = "Sync job starting"
	LogMsgSyncJobFinished = "Sync job finished"
	LogMsgSyncJobAborted  = "Sync job aborted"
)

// SyncWorkers is the size of the pool running sync jobs; runs must never overlap
const SyncWorkers = 1

// SyncQueueSize holds at most one pending run behind the active one
const SyncQueueSize = 1
