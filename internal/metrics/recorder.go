package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// RecordRecord counts one record outcome
func RecordRecord(action domain.Action) {
	SyncRecords.WithLabelValues(string(action)).Inc()
}

// RecordFailure counts one failed record for a source
func RecordFailure(source string) {
	SyncRecordFailures.WithLabelValues(source).Inc()
	SyncRecords.WithLabelValues(string(domain.ActionFailed)).Inc()
}

// RecordRun records the outcome and duration of a finished run
func RecordRun(ctx context.Context, summary *domain.RunSummary) {
	status := RunStatusSuccess
	switch {
	case !summary.Succeeded():
		status = RunStatusFailed
	case summary.DryRun:
		status = RunStatusDryRun
	}

	SyncRuns.WithLabelValues(status).Inc()
	SyncRunDuration.Observe(summary.Duration().Seconds())

	logger.FromContext(ctx).Debug(LogMsgRunRecorded, "status", status)
}

// ObserveRemote records one outbound API call
func ObserveRemote(service, method string, statusCode int, elapsed time.Duration) {
	RemoteRequests.WithLabelValues(service, method, strconv.Itoa(statusCode)).Inc()
	RemoteRequestDuration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}
