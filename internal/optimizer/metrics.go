package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// optimizationDuration tracks the time spent per basket optimization.
	optimizationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "basket_optimization_duration_seconds",
		Help:    "Time taken to optimize a basket",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// basketSize tracks the distribution of requested basket sizes.
	basketSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "basket_items_count",
		Help:    "Number of line items in optimization requests",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	})

	// fulfilledLines tracks how many lines each optimization actually filled.
	fulfilledLines = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "basket_fulfilled_lines_count",
		Help:    "Number of line items fulfilled per optimization",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	})

	// skippedLines counts lines dropped during optimization by reason.
	skippedLines = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_skipped_lines_total",
		Help: "Total number of skipped basket lines by reason",
	}, []string{"reason"}) // reason: unknown_product, no_offer
)

// MetricsRecorder provides methods to record basket optimization metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOptimizationDuration records the duration of one optimization.
func (m *MetricsRecorder) RecordOptimizationDuration(duration time.Duration) {
	optimizationDuration.Observe(duration.Seconds())
}

// RecordBasketSize records the size of a requested basket.
func (m *MetricsRecorder) RecordBasketSize(size int) {
	basketSize.Observe(float64(size))
}

// RecordFulfilledLines records how many lines were fulfilled.
func (m *MetricsRecorder) RecordFulfilledLines(count int) {
	fulfilledLines.Observe(float64(count))
}

// RecordSkippedLine records a skipped line with its reason.
func (m *MetricsRecorder) RecordSkippedLine(reason string) {
	skippedLines.WithLabelValues(reason).Inc()
}
