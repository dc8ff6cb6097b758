package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequestsTotal counts upstream provider calls by final outcome.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of provider API requests",
		},
		[]string{"provider", "status"},
	)

	// ProviderRetriesTotal counts transient-failure retries by trigger.
	ProviderRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_retries_total",
			Help: "Total number of provider request retries",
		},
		[]string{"provider", "reason"},
	)

	// ChainFetchFailuresTotal counts per-chain fetches absorbed as empty results.
	ChainFetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_chain_fetch_failures_total",
			Help: "Total number of per-chain provider fetches that failed and were absorbed",
		},
		[]string{"provider", "chain"},
	)

	// ProviderFetchDuration observes the wall time of one full provider fetch.
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "Duration of full provider fetches in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	// CompareRequestsTotal counts reconciliation runs.
	CompareRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compare_requests_total",
			Help: "Total number of cross-provider compare requests",
		},
	)

	// HTTPRequestsTotal counts inbound HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes inbound HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)
