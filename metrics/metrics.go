// Package metrics holds the Prometheus collectors for the search
// service. Collectors are package-level but registration is explicit,
// so importing the package from library code has no side effects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "libsearch",
			Name:      "searches_total",
			Help:      "Search attempts by absorbed outcome status",
		},
		[]string{"status"},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "libsearch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration including pool wait",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "libsearch",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)
)

// MustRegister registers the search collectors with reg. Call once
// from the composition root; the default registerer is used when reg
// is nil.
func MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(searchesTotal, searchDuration, searchResults)
}

// ObserveSearch records one completed (or absorbed-failed) search.
func ObserveSearch(status string, resultCount int, elapsed time.Duration) {
	searchesTotal.WithLabelValues(status).Inc()
	searchDuration.Observe(elapsed.Seconds())
	searchResults.Observe(float64(resultCount))
}
