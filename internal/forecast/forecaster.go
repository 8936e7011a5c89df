// Package forecast classifies short-term price direction from a store price
// history and extrapolates the next price point.
package forecast

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartshop/insights-service/internal/catalog"
)

// Trend labels for price direction.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

// Buy-time advisories matching the trend labels.
const (
	adviceRising  = "Buy now - the price is expected to rise"
	adviceFalling = "Wait a few days - the price may keep dropping"
	adviceStable  = "Stable price - buy whenever it suits you"
)

// Prediction is the forecast result for one product.
type Prediction struct {
	ProductID      string  // Catalog product identifier
	PredictedPrice float64 // Extrapolated next price, 2-decimal rounded
	Confidence     float64 // In [MinConfidence, 1.0], lower under volatility
	Trend          string  // rising, falling or stable
	BestBuyTime    string  // Advisory matching the trend
}

// Forecaster predicts price movement from historical series.
type Forecaster struct {
	history catalog.HistorySource
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewForecaster creates a forecaster over the given history provider.
func NewForecaster(history catalog.HistorySource, config *Config) *Forecaster {
	return &Forecaster{
		history: history,
		config:  config,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "forecaster").Logger(),
	}
}

// Forecast predicts the next price for each requested product. Products with
// missing, too-short, or numerically degenerate histories are excluded from
// the output; one bad product never aborts the batch.
func (f *Forecaster) Forecast(ctx context.Context, productIDs []string) ([]Prediction, error) {
	startTime := time.Now()
	defer func() {
		f.metrics.RecordForecastDuration(time.Since(startTime))
	}()

	predictions := make([]Prediction, 0, len(productIDs))
	for _, id := range productIDs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		prediction, ok := f.forecastOne(ctx, id)
		if !ok {
			continue
		}
		predictions = append(predictions, prediction)
	}

	f.metrics.RecordPredictionCount(len(predictions))
	return predictions, nil
}

// forecastOne computes a single prediction. Returns ok=false when the
// product cannot be forecast.
func (f *Forecaster) forecastOne(ctx context.Context, productID string) (Prediction, bool) {
	history, found, err := f.history.History(ctx, productID)
	if err != nil {
		f.logger.Error().Err(err).Str("product_id", productID).Msg("History lookup failed")
		f.metrics.RecordSkip("lookup_error")
		return Prediction{}, false
	}
	if !found {
		f.metrics.RecordSkip("no_history")
		return Prediction{}, false
	}

	prices := history.Prices()
	w := f.config.TrendWindow
	n := len(prices)
	if n <= w {
		// Not enough samples to split into recent and older halves.
		f.metrics.RecordSkip("short_history")
		return Prediction{}, false
	}

	olderStart := n - 2*w
	if olderStart < 0 {
		olderStart = 0
	}
	recent := prices[n-w:]
	older := prices[olderStart : n-w]

	recentMean := mean(recent)
	olderMean := mean(older)
	if olderMean == 0 || recentMean == 0 {
		// Zero-mean series cannot be classified without dividing by zero.
		f.metrics.RecordSkip("degenerate")
		return Prediction{}, false
	}

	trendChange := (recentMean - olderMean) / olderMean

	var trend, bestBuyTime string
	switch {
	case trendChange > f.config.TrendThreshold:
		trend, bestBuyTime = TrendRising, adviceRising
	case trendChange < -f.config.TrendThreshold:
		trend, bestBuyTime = TrendFalling, adviceFalling
	default:
		trend, bestBuyTime = TrendStable, adviceStable
	}

	predicted := prices[n-1]
	if n >= f.config.FitWindow {
		slope := linearSlope(prices[n-f.config.FitWindow:])
		predicted += slope
	}

	volatility := stddev(recent) / recentMean
	confidence := math.Max(f.config.MinConfidence, 1.0-volatility*f.config.ConfidenceVolatilityGain)

	f.metrics.RecordTrend(trend)
	return Prediction{
		ProductID:      productID,
		PredictedPrice: round2(predicted),
		Confidence:     round2(confidence),
		Trend:          trend,
		BestBuyTime:    bestBuyTime,
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
