package forecast

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// forecastDuration tracks the time spent per forecast batch.
	forecastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_batch_duration_seconds",
		Help:    "Time taken to forecast a batch of products",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// predictionCount tracks how many predictions each batch produced.
	predictionCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_predictions_count",
		Help:    "Number of predictions produced per batch",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})

	// forecastSkips counts products excluded from forecasting by reason.
	forecastSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_skipped_products_total",
		Help: "Total number of products skipped during forecasting by reason",
	}, []string{"reason"}) // reason: no_history, short_history, degenerate, lookup_error

	// trendLabels counts produced trend classifications.
	trendLabels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_trend_total",
		Help: "Total number of trend classifications by label",
	}, []string{"trend"})
)

// MetricsRecorder provides methods to record forecasting metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordForecastDuration records the duration of one forecast batch.
func (m *MetricsRecorder) RecordForecastDuration(duration time.Duration) {
	forecastDuration.Observe(duration.Seconds())
}

// RecordPredictionCount records the number of predictions in a batch.
func (m *MetricsRecorder) RecordPredictionCount(count int) {
	predictionCount.Observe(float64(count))
}

// RecordSkip records a skipped product with its reason.
func (m *MetricsRecorder) RecordSkip(reason string) {
	forecastSkips.WithLabelValues(reason).Inc()
}

// RecordTrend records a produced trend classification.
func (m *MetricsRecorder) RecordTrend(trend string) {
	trendLabels.WithLabelValues(trend).Inc()
}
