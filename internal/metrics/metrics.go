package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lojamobile_customer_sync_runs_total",
			Help: "Customer sync runs by result",
		},
		[]string{"result"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lojamobile_customer_sync_duration_seconds",
			Help:    "Customer sync duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BackupWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lojamobile_backup_writes_total",
			Help: "Customer records written to the backup mirror by operation",
		},
		[]string{"op"},
	)

	BackupPropagationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lojamobile_backup_propagation_failures_total",
			Help: "Best-effort backup creates that failed",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
