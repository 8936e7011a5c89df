package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartshop/insights-service/internal/optimizer"
)

// ============================================================================
// Basket Optimization Endpoints
// ============================================================================

// BasketItem represents one requested product in the basket
type BasketItem struct {
	ProductID string   `json:"product_id" binding:"required" jsonschema:"required"`
	Quantity  int      `json:"quantity" binding:"required,min=1" jsonschema:"required,minimum=1"`
	MaxPrice  *float64 `json:"max_price,omitempty" jsonschema:"minimum=0"`
}

// OptimizeBasketRequest represents the basket optimization request
type OptimizeBasketRequest struct {
	Items           []BasketItem `json:"items" binding:"required,min=1" jsonschema:"required"`
	Budget          *float64     `json:"budget,omitempty" jsonschema:"minimum=0"`
	PreferredStores []string     `json:"preferred_stores,omitempty"`
}

// OptimizedItem is the per-line breakdown in the response
type OptimizedItem struct {
	ProductID   string  `json:"product_id" jsonschema:"required"`
	ProductName string  `json:"product_name" jsonschema:"required"`
	Quantity    int     `json:"quantity" jsonschema:"required"`
	Store       string  `json:"store" jsonschema:"required"`
	UnitPrice   float64 `json:"unit_price" jsonschema:"required"`
	LineTotal   float64 `json:"line_total" jsonschema:"required"`
	Discount    float64 `json:"discount"`
	Savings     float64 `json:"savings"`
}

// OptimizeBasketResponse represents the basket optimization result
type OptimizeBasketResponse struct {
	OptimizedList     []OptimizedItem `json:"optimized_list" jsonschema:"required"`
	TotalCost         float64         `json:"total_cost" jsonschema:"required"`
	Savings           float64         `json:"savings" jsonschema:"required"`
	StoreDistribution map[string]int  `json:"store_distribution" jsonschema:"required"`
	Recommendations   []string        `json:"recommendations" jsonschema:"required"`
}

// OptimizeBasket handles basket optimization requests
// POST /optimize-basket
func OptimizeBasket(c *gin.Context) {
	var req OptimizeBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if basketOptimizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Engine not initialized"})
		return
	}

	items := make([]optimizer.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = optimizer.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			MaxPrice:  item.MaxPrice,
		}
	}

	result, err := basketOptimizer.Optimize(c.Request.Context(), &optimizer.BasketRequest{
		Items:           items,
		Budget:          req.Budget,
		PreferredStores: req.PreferredStores,
	})
	if err != nil {
		var invalid optimizer.ErrInvalidRequest
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	list := make([]OptimizedItem, len(result.Items))
	for i, item := range result.Items {
		list[i] = OptimizedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Store:       item.Store,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Discount:    item.Discount,
			Savings:     item.Savings,
		}
	}

	c.JSON(http.StatusOK, OptimizeBasketResponse{
		OptimizedList:     list,
		TotalCost:         result.TotalCost,
		Savings:           result.TotalSavings,
		StoreDistribution: result.StoreDistribution,
		Recommendations:   result.Recommendations,
	})
}
