package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InteractionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_created_total",
			Help: "Interaction records created, by type",
		},
		[]string{"type"},
	)

	SnapshotImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_imports_total",
			Help: "Snapshot import attempts, by outcome",
		},
		[]string{"outcome"},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Printable reports generated, by format",
		},
		[]string{"format"},
	)
)
