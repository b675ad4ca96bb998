package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation Prometheus metrics.
var (
	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "careerlens",
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests",
		},
		[]string{"model", "intent", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "careerlens",
			Name:      "generation_request_duration_seconds",
			Help:      "Text generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model", "intent"},
	)

	IndexedPostings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "careerlens",
			Name:      "indexed_postings",
			Help:      "Number of job postings in the vector index",
		},
		[]string{"collection"},
	)
)

var genMetricsRegistered bool

// RegisterGenerationMetrics registers Prometheus generation metrics. Must be called once from main.
func RegisterGenerationMetrics() {
	if genMetricsRegistered {
		return
	}
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(IndexedPostings)
	genMetricsRegistered = true
}
