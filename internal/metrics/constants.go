package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Sync metric names
const (
	MetricNameSyncRuns              = "sync_runs_total"
	MetricNameSyncRunDuration       = "sync_run_duration_seconds"
	MetricNameSyncRecords           = "sync_records_total"
	MetricNameSyncRecordFailures    = "sync_record_failures_total"
	MetricNameTaxonomyOptionsAdded  = "taxonomy_options_added_total"
	MetricNameSchemaFetches         = "schema_fetches_total"
	MetricNameRemoteRequests        = "remote_requests_total"
	MetricNameRemoteRequestDuration = "remote_request_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Sync metric help text
const (
	HelpTextSyncRuns              = "Total number of sync runs by outcome"
	HelpTextSyncRunDuration       = "Sync run duration in seconds"
	HelpTextSyncRecords           = "Total number of records processed by action"
	HelpTextSyncRecordFailures    = "Total number of records that failed to sync"
	HelpTextTaxonomyOptionsAdded  = "Total number of select options appended to the destination schema"
	HelpTextSchemaFetches         = "Total number of destination schema fetches"
	HelpTextRemoteRequests        = "Total number of outbound API requests"
	HelpTextRemoteRequestDuration = "Outbound API request latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelAction   = "action"
	LabelSource   = "source"
	LabelProperty = "property"
	LabelService  = "service"
)

// Run status label values
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
	RunStatusDryRun  = "dry_run"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RunDurationBuckets covers runs from one second to ten minutes
var RunDurationBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgRunRecorded = "Metrics recorded for run"
)
