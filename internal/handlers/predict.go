package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// Price Prediction Endpoints
// ============================================================================

// PredictPricesRequest represents the prediction request body
type PredictPricesRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required,min=1" jsonschema:"required"`
}

// PricePrediction represents one product forecast
type PricePrediction struct {
	ProductID      string  `json:"product_id" jsonschema:"required"`
	PredictedPrice float64 `json:"predicted_price" jsonschema:"required"`
	Confidence     float64 `json:"confidence" jsonschema:"required,minimum=0,maximum=1"`
	Trend          string  `json:"trend" jsonschema:"required,enum=rising,enum=falling,enum=stable"`
	BestBuyTime    string  `json:"best_buy_time" jsonschema:"required"`
}

// PredictPricesResponse represents the prediction response
type PredictPricesResponse struct {
	Predictions []PricePrediction `json:"predictions" jsonschema:"required"`
	Total       int               `json:"total" jsonschema:"required"`
}

// PredictPrices handles price trend prediction requests. The body may be
// either a bare JSON array of product ids or an object with a product_ids
// field; clients have historically sent both shapes.
// POST /predict-prices
func PredictPrices(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	productIDs, err := parseProductIDs(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if forecaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Engine not initialized"})
		return
	}

	predictions, err := forecaster.Forecast(c.Request.Context(), productIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]PricePrediction, len(predictions))
	for i, p := range predictions {
		response[i] = PricePrediction{
			ProductID:      p.ProductID,
			PredictedPrice: p.PredictedPrice,
			Confidence:     p.Confidence,
			Trend:          p.Trend,
			BestBuyTime:    p.BestBuyTime,
		}
	}

	c.JSON(http.StatusOK, PredictPricesResponse{
		Predictions: response,
		Total:       len(response),
	})
}

// parseProductIDs accepts ["id1","id2"] or {"product_ids":["id1","id2"]}.
func parseProductIDs(body []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(body, &ids); err == nil {
		if len(ids) == 0 {
			return nil, errEmptyProductIDs
		}
		return ids, nil
	}

	var req PredictPricesRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errMalformedProductIDs
	}
	if len(req.ProductIDs) == 0 {
		return nil, errEmptyProductIDs
	}
	return req.ProductIDs, nil
}

var (
	errEmptyProductIDs     = &requestError{"product_ids must not be empty"}
	errMalformedProductIDs = &requestError{"expected a JSON array of product ids or an object with product_ids"}
)

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }
