package recommend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// scoringDuration tracks the time spent scoring the catalog.
	scoringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_scoring_duration_seconds",
		Help:    "Time taken to score the catalog against a profile",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// recommendationCount tracks how many recommendations each call returned.
	recommendationCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_results_count",
		Help:    "Number of recommendations returned per request",
		Buckets: []float64{0, 1, 3, 5, 10},
	})
)

// MetricsRecorder provides methods to record recommendation metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordScoringDuration records the duration of one scoring pass.
func (m *MetricsRecorder) RecordScoringDuration(duration time.Duration) {
	scoringDuration.Observe(duration.Seconds())
}

// RecordRecommendationCount records the number of recommendations returned.
func (m *MetricsRecorder) RecordRecommendationCount(count int) {
	recommendationCount.Observe(float64(count))
}
