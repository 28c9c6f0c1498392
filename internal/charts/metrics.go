package charts

import "github.com/prometheus/client_golang/prometheus"

var (
	reportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charts_reports_total",
			Help: "Top reports computed, by outcome",
		},
		[]string{"status"},
	)
	windowQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charts_window_query_duration_seconds",
			Help:    "Time spent fetching plays for one window",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)
)

// RegisterMetrics adds the report metrics to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(reportsTotal, windowQueryDuration)
}
