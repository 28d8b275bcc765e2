// Package metrics provides Prometheus metrics for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

var (
	// ProviderRequests counts provider HTTP requests by outcome.
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of provider requests",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderDuration measures provider request latency including retries.
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of provider requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// MergedItems tracks the size of the last merged collection per kind.
	MergedItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "merged_items",
			Help:      "Number of items per kind in the last merge pass",
		},
		[]string{"kind"},
	)

	// FavoritesSize tracks the number of favorited items.
	FavoritesSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorites_items",
			Help:      "Number of items in the favorites collection",
		},
	)

	// StorageErrors counts storage failures, including recovered corruption.
	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Total number of storage errors",
		},
		[]string{"document", "operation"},
	)
)

// RecordProviderRequest records one provider request.
func RecordProviderRequest(provider, outcome string, seconds float64) {
	ProviderRequests.WithLabelValues(provider, outcome).Inc()
	ProviderDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordStorageError records a failed read, write or decode.
func RecordStorageError(document, operation string) {
	StorageErrors.WithLabelValues(document, operation).Inc()
}
