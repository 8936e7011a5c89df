package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/insights-service/internal/catalog"
)

func historyOf(productID string, prices ...float64) catalog.PriceHistory {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]catalog.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = catalog.PricePoint{Date: start.AddDate(0, 0, i), Price: p}
	}
	return catalog.PriceHistory{ProductID: productID, Points: points}
}

func seq(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func newTestForecaster(histories ...catalog.PriceHistory) *Forecaster {
	return NewForecaster(catalog.NewMemorySource(nil, histories), DefaultConfig())
}

func TestForecastRisingTrend(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(10.0, 0.2, 14)...))

	predictions, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, TrendRising, p.Trend)
	assert.Equal(t, adviceRising, p.BestBuyTime)
	// Last observed 12.6 extrapolated by the 0.2/day slope.
	assert.InDelta(t, 12.8, p.PredictedPrice, 1e-9)
	assert.Greater(t, p.PredictedPrice, 12.6)
}

func TestForecastFallingTrend(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(12.6, -0.2, 14)...))

	predictions, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, TrendFalling, p.Trend)
	assert.Equal(t, adviceFalling, p.BestBuyTime)
	assert.InDelta(t, 9.8, p.PredictedPrice, 1e-9)
}

func TestForecastStableConstantSeries(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(5.0, 0, 14)...))

	predictions, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)

	p := predictions[0]
	assert.Equal(t, TrendStable, p.Trend)
	assert.Equal(t, adviceStable, p.BestBuyTime)
	assert.InDelta(t, 5.0, p.PredictedPrice, 1e-9)
	assert.InDelta(t, 1.0, p.Confidence, 1e-9)
}

func TestForecastVolatilityLowersConfidence(t *testing.T) {
	f := newTestForecaster(
		historyOf("calm", seq(10.0, 0, 14)...),
		historyOf("jumpy", 10, 10, 10, 10, 10, 10, 10, 6, 14, 6, 14, 6, 14, 6),
	)

	predictions, err := f.Forecast(context.Background(), []string{"calm", "jumpy"})
	require.NoError(t, err)
	require.Len(t, predictions, 2)

	assert.InDelta(t, 1.0, predictions[0].Confidence, 1e-9)
	assert.Less(t, predictions[1].Confidence, predictions[0].Confidence)
	assert.GreaterOrEqual(t, predictions[1].Confidence, 0.3)
}

func TestForecastConfidenceFloor(t *testing.T) {
	// Extreme swings drag raw confidence below zero; the floor holds at 0.3.
	f := newTestForecaster(historyOf("wild", 1, 1, 1, 1, 1, 1, 1, 1, 100, 1, 100, 1, 100, 1))

	predictions, err := f.Forecast(context.Background(), []string{"wild"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.InDelta(t, 0.3, predictions[0].Confidence, 1e-9)
}

func TestForecastSkipsShortHistory(t *testing.T) {
	f := newTestForecaster(historyOf("new-product", seq(3.0, 0.1, 7)...))

	predictions, err := f.Forecast(context.Background(), []string{"new-product"})
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestForecastSkipsUnknownProduct(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(10.0, 0.2, 14)...))

	predictions, err := f.Forecast(context.Background(), []string{"milk-1l", "no-such-product"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, "milk-1l", predictions[0].ProductID)
}

func TestForecastSkipsZeroPriceSeries(t *testing.T) {
	f := newTestForecaster(historyOf("free", seq(0, 0, 14)...))

	predictions, err := f.Forecast(context.Background(), []string{"free"})
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestForecastPartialOlderWindow(t *testing.T) {
	// 9 samples: the older window has only 2 entries but forecasting
	// still proceeds.
	f := newTestForecaster(historyOf("milk-1l", seq(10.0, 0.5, 9)...))

	predictions, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, TrendRising, predictions[0].Trend)
}

func TestForecastDeterministic(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(10.0, 0.2, 14)...))

	first, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	second, err := f.Forecast(context.Background(), []string{"milk-1l"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestForecastCancelledContext(t *testing.T) {
	f := newTestForecaster(historyOf("milk-1l", seq(10.0, 0.2, 14)...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Forecast(ctx, []string{"milk-1l"})
	assert.ErrorIs(t, err, context.Canceled)
}
