package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "priceboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "priceboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	UpstreamFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "priceboard_upstream_fetches_total",
			Help: "Upstream history fetches by fetcher and outcome",
		},
		[]string{"fetcher", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "priceboard_cache_lookups_total",
			Help: "History cache lookups by result (hit, miss, stale, stored)",
		},
		[]string{"result"},
	)
)
