package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartshop/insights-service/internal/recommend"
)

// ============================================================================
// Personalized Recommendation Endpoints
// ============================================================================

// RecommendationsRequest represents the user preference profile
type RecommendationsRequest struct {
	Categories []string `json:"categories,omitempty"`
	MaxPrice   float64  `json:"max_price,omitempty" jsonschema:"minimum=0"`
	Brands     []string `json:"brands,omitempty"`
}

// RecommendedProduct represents one scored recommendation
type RecommendedProduct struct {
	ProductID string  `json:"product_id" jsonschema:"required"`
	Name      string  `json:"name" jsonschema:"required"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	BestPrice float64 `json:"best_price" jsonschema:"required"`
	BestStore string  `json:"best_store" jsonschema:"required"`
	Discount  float64 `json:"discount"`
	Rating    float64 `json:"rating" jsonschema:"minimum=0,maximum=5"`
	Score     float64 `json:"score" jsonschema:"required"`
	Reason    string  `json:"reason" jsonschema:"required"`
}

// RecommendationsResponse represents the recommendation list
type RecommendationsResponse struct {
	Recommendations []RecommendedProduct `json:"recommendations" jsonschema:"required"`
	Total           int                  `json:"total" jsonschema:"required"`
}

// GetRecommendations handles personalized recommendation requests
// POST /recommendations
func GetRecommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MaxPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be non-negative"})
		return
	}

	if scorer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Engine not initialized"})
		return
	}

	results, err := scorer.Recommend(c.Request.Context(), recommend.Profile{
		Categories: req.Categories,
		MaxPrice:   req.MaxPrice,
		Brands:     req.Brands,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]RecommendedProduct, len(results))
	for i, r := range results {
		response[i] = RecommendedProduct{
			ProductID: r.ProductID,
			Name:      r.Name,
			Category:  r.Category,
			Brand:     r.Brand,
			BestPrice: r.BestPrice,
			BestStore: r.BestStore,
			Discount:  r.Discount,
			Rating:    r.Rating,
			Score:     r.Score,
			Reason:    r.Reason,
		}
	}

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: response,
		Total:           len(response),
	})
}
