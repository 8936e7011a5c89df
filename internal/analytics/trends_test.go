package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/insights-service/internal/catalog"
)

func marchClock() time.Time {
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func flatHistory(productID string, price float64, days int) catalog.PriceHistory {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]catalog.PricePoint, days)
	for i := range points {
		points[i] = catalog.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return catalog.PriceHistory{ProductID: productID, Points: points}
}

func TestMarketTrendsTopCategories(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Category: "dairy", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
		{ID: "b", Category: "dairy", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
		{ID: "c", Category: "bakery", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
		{ID: "d", Category: "bakery", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
		{ID: "e", Category: "produce", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
		{ID: "f", Category: "frozen", Offers: []catalog.Offer{{Store: "LIDL", Price: 1}}},
	}
	source := catalog.NewMemorySource(products, nil)

	a := NewAnalyzer(source, source).WithClock(marchClock)
	trends, err := a.MarketTrends(context.Background())
	require.NoError(t, err)

	// Two tied pairs, alphabetical within ties, top 3 only.
	assert.Equal(t, []string{"bakery", "dairy", "frozen"}, trends.TopCategories)
}

func TestMarketTrendsPriceChanges(t *testing.T) {
	// One product rose 10% over the last week, the other stayed flat.
	rising := flatHistory("riser", 10.0, 40)
	for i := len(rising.Points) - 7; i < len(rising.Points); i++ {
		rising.Points[i].Price = 11.0
	}
	rising.Points[len(rising.Points)-1].Price = 11.0

	products := []catalog.Product{
		{ID: "riser", Category: "dairy", Offers: []catalog.Offer{{Store: "LIDL", Price: 11}}},
		{ID: "flat", Category: "dairy", Offers: []catalog.Offer{{Store: "LIDL", Price: 5}}},
	}
	source := catalog.NewMemorySource(products, []catalog.PriceHistory{
		rising,
		flatHistory("flat", 5.0, 40),
	})

	a := NewAnalyzer(source, source).WithClock(marchClock)
	trends, err := a.MarketTrends(context.Background())
	require.NoError(t, err)

	// The riser moved 10% against both baselines, the flat product 0%,
	// so both averages come out at 5%.
	assert.InDelta(t, 5.0, trends.WeekChangePct, 1e-9)
	assert.InDelta(t, 5.0, trends.MonthChangePct, 1e-9)
}

func TestMarketTrendsShortHistoriesIgnored(t *testing.T) {
	products := []catalog.Product{
		{ID: "new", Category: "dairy", Offers: []catalog.Offer{{Store: "LIDL", Price: 3}}},
	}
	source := catalog.NewMemorySource(products, []catalog.PriceHistory{
		flatHistory("new", 3.0, 4),
	})

	a := NewAnalyzer(source, source).WithClock(marchClock)
	trends, err := a.MarketTrends(context.Background())
	require.NoError(t, err)

	assert.Zero(t, trends.WeekChangePct)
	assert.Zero(t, trends.MonthChangePct)
}

func TestMarketTrendsStoreHighlights(t *testing.T) {
	products := []catalog.Product{
		{ID: "a", Category: "dairy", Offers: []catalog.Offer{
			{Store: "LIDL", Price: 5, Discount: 2},
			{Store: "Biedronka", Price: 5, Discount: 0.1},
		}},
		{ID: "b", Category: "dairy", Offers: []catalog.Offer{
			{Store: "Biedronka", Price: 4, Discount: 0.1},
		}},
	}
	source := catalog.NewMemorySource(products, nil)

	a := NewAnalyzer(source, source).WithClock(marchClock)
	trends, err := a.MarketTrends(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Best discount rates", trends.BestStores["LIDL"])
	assert.Equal(t, "Widest product range", trends.BestStores["Biedronka"])
}

func TestMarketTrendsSeasonalInsight(t *testing.T) {
	source := catalog.NewMemorySource(nil, nil)

	tests := []struct {
		month time.Month
		want  string
	}{
		{time.December, "Hot drinks typically climb around 15% during the winter season"},
		{time.July, "Seasonal produce is at its yearly price low"},
		{time.March, "No strong seasonal movement expected this month"},
	}

	for _, tt := range tests {
		a := NewAnalyzer(source, source).WithClock(func() time.Time {
			return time.Date(2025, tt.month, 10, 0, 0, 0, 0, time.UTC)
		})
		trends, err := a.MarketTrends(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.want, trends.SeasonalInsight)
	}
}

func TestChangePct(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10, 10, 10, 11}

	change, ok := changePct(prices, 7)
	require.True(t, ok)
	assert.InDelta(t, 10.0, change, 1e-9)

	_, ok = changePct(prices, 30)
	assert.False(t, ok)

	_, ok = changePct([]float64{0, 0, 0, 0, 0, 0, 0, 0}, 7)
	assert.False(t, ok)
}
