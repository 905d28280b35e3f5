package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchPathTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aisearch",
			Name:      "search_path_total",
			Help:      "Query resolutions by path taken",
		},
		[]string{"path"}, // browse / exact_name / fuzzy_name / short_query / hybrid / dense_fallback
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aisearch",
			Name:      "search_duration_seconds",
			Help:      "Query resolution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"path"},
	)

	RerankTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aisearch",
			Name:      "rerank_total",
			Help:      "Rerank passes by outcome",
		},
		[]string{"status"}, // "success" / "skipped" / "degraded"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchPathTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(RerankTotal)
	searchMetricsRegistered = true
}
