package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP request metrics, recorded by middleware.MetricsMiddleware.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Domain metrics for the two inspector entry points.
var (
	BarcodeResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barcode_resolutions_total",
			Help: "Barcode resolution attempts by outcome (single, multiple, none, empty)",
		},
		[]string{"outcome"},
	)

	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "item_snapshot_duration_seconds",
			Help:    "Time spent assembling item snapshots",
			Buckets: prometheus.DefBuckets,
		},
	)
)
