package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SaleSubmissions counts cart submissions by outcome
	// (success, empty, negative_total, rejected, busy).
	SaleSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sale_submissions_total",
			Help: "Cart submissions by outcome",
		},
		[]string{"outcome"},
	)

	PrintJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_print_jobs_total",
			Help: "Invoice print jobs by template and outcome",
		},
		[]string{"template", "outcome"},
	)

	OpenCarts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_open_carts",
			Help: "Number of live cart sessions",
		},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)
)
