package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Metrics
var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRuns,
			Help: HelpTextSyncRuns,
		},
		[]string{LabelStatus},
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncRunDuration,
			Help:    HelpTextSyncRunDuration,
			Buckets: RunDurationBuckets,
		},
	)

	SyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRecords,
			Help: HelpTextSyncRecords,
		},
		[]string{LabelAction},
	)

	SyncRecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRecordFailures,
			Help: HelpTextSyncRecordFailures,
		},
		[]string{LabelSource},
	)

	TaxonomyOptionsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTaxonomyOptionsAdded,
			Help: HelpTextTaxonomyOptionsAdded,
		},
		[]string{LabelProperty},
	)

	SchemaFetches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSchemaFetches,
			Help: HelpTextSchemaFetches,
		},
	)
)

// Outbound API Metrics
var (
	RemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteRequests,
			Help: HelpTextRemoteRequests,
		},
		[]string{LabelService, LabelMethod, LabelStatus},
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRemoteRequestDuration,
			Help:    HelpTextRemoteRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelService, LabelMethod},
	)
)
