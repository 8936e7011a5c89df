package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartshop/insights-service/internal/catalog"
)

// ============================================================================
// Product Catalog Endpoints
// ============================================================================

// ListProductsQuery represents the optional catalog filters
type ListProductsQuery struct {
	Category string `form:"category" json:"category"`
	Store    string `form:"store" json:"store"`
}

// ListProducts returns the product catalog with current offers
// GET /products
func ListProducts(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if catalogSource == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog not initialized"})
		return
	}

	products, err := catalogSource.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if query.Category != "" && !strings.EqualFold(p.Category, query.Category) {
			continue
		}
		if query.Store != "" && !productSoldAt(p, query.Store) {
			continue
		}
		filtered = append(filtered, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"products": filtered,
		"total":    len(filtered),
	})
}

func productSoldAt(p catalog.Product, store string) bool {
	for _, o := range p.Offers {
		if strings.EqualFold(o.Store, store) {
			return true
		}
	}
	return false
}
