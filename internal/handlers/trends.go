package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// Market Analytics Endpoints
// ============================================================================

// MarketTrendsResponse represents the market-level trend summary
type MarketTrendsResponse struct {
	TrendingCategories []string          `json:"trending_categories" jsonschema:"required"`
	PriceChanges       PriceChanges      `json:"price_changes" jsonschema:"required"`
	BestDeals          map[string]string `json:"best_deals" jsonschema:"required"`
	SeasonalInsight    string            `json:"seasonal_insight" jsonschema:"required"`
}

// PriceChanges holds average catalog price movement per window
type PriceChanges struct {
	WeeklyPct  float64 `json:"weekly_pct" jsonschema:"required"`
	MonthlyPct float64 `json:"monthly_pct" jsonschema:"required"`
}

// GetMarketTrends returns the catalog-wide market trend summary
// GET /analytics/market-trends
func GetMarketTrends(c *gin.Context) {
	if analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Engine not initialized"})
		return
	}

	trends, err := analyzer.MarketTrends(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MarketTrendsResponse{
		TrendingCategories: trends.TopCategories,
		PriceChanges: PriceChanges{
			WeeklyPct:  trends.WeekChangePct,
			MonthlyPct: trends.MonthChangePct,
		},
		BestDeals:       trends.BestStores,
		SeasonalInsight: trends.SeasonalInsight,
	})
}
