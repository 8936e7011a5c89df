package optimizer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartshop/insights-service/internal/catalog"
)

// BasketOptimizer routes each basket line to the store with the lowest
// effective price and derives aggregate advisories.
type BasketOptimizer struct {
	catalog catalog.Source
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time
}

// NewBasketOptimizer creates a basket optimizer over the given catalog.
func NewBasketOptimizer(source catalog.Source, config *Config) *BasketOptimizer {
	return &BasketOptimizer{
		catalog: source,
		config:  config,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "basket_optimizer").Logger(),
		now:     time.Now,
	}
}

// WithClock overrides the wall clock used for seasonal advisories.
// Intended for deterministic tests.
func (o *BasketOptimizer) WithClock(now func() time.Time) *BasketOptimizer {
	o.now = now
	return o
}

// Optimize resolves every line item against the catalog and returns the
// aggregate result. Unknown products and lines no offer can satisfy are
// skipped, never fatal; only structural violations of the request contract
// produce an error.
func (o *BasketOptimizer) Optimize(ctx context.Context, req *BasketRequest) (*BasketResult, error) {
	startTime := time.Now()
	defer func() {
		o.metrics.RecordOptimizationDuration(time.Since(startTime))
	}()

	if err := req.Validate(o.config.MaxBasketItems); err != nil {
		return nil, err
	}

	o.metrics.RecordBasketSize(len(req.Items))

	result := &BasketResult{
		Items:             make([]ItemBreakdown, 0, len(req.Items)),
		StoreDistribution: make(map[string]int),
	}

	for _, item := range req.Items {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		product, ok, err := o.catalog.Product(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for %s: %w", item.ProductID, err)
		}
		if !ok {
			o.logger.Debug().Str("product_id", item.ProductID).Msg("Unknown product, skipping line")
			o.metrics.RecordSkippedLine("unknown_product")
			continue
		}

		offer, ok := SelectOffer(product.Offers, item.MaxPrice, req.PreferredStores)
		if !ok {
			o.logger.Debug().Str("product_id", item.ProductID).Msg("No offer within price ceiling, skipping line")
			o.metrics.RecordSkippedLine("no_offer")
			continue
		}

		lineTotal := Round2(offer.Price * float64(item.Quantity))
		lineSavings := Round2(offer.Discount * float64(item.Quantity))

		result.Items = append(result.Items, ItemBreakdown{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Store:       offer.Store,
			UnitPrice:   offer.Price,
			LineTotal:   lineTotal,
			Discount:    offer.Discount,
			Savings:     lineSavings,
		})
		result.TotalCost = Round2(result.TotalCost + lineTotal)
		result.TotalSavings = Round2(result.TotalSavings + lineSavings)
		result.StoreDistribution[offer.Store] += item.Quantity
	}

	result.Recommendations = o.buildRecommendations(result, req.Budget)

	o.metrics.RecordFulfilledLines(len(result.Items))
	return result, nil
}

// buildRecommendations appends advisories in fixed priority order: budget
// status, store consolidation, seasonal note, discount highlights.
func (o *BasketOptimizer) buildRecommendations(result *BasketResult, budget *float64) []string {
	recs := []string{}

	if budget != nil && result.TotalCost > *budget {
		recs = append(recs, fmt.Sprintf("Over budget by %.2f PLN - consider cheaper alternatives", result.TotalCost-*budget))
	} else if budget != nil && result.TotalCost < *budget*o.config.BudgetComfortRatio {
		recs = append(recs, fmt.Sprintf("Within budget with %.2f PLN to spare", *budget-result.TotalCost))
	}

	totalQuantity := 0
	dominantStore := ""
	dominantQuantity := 0
	for store, qty := range result.StoreDistribution {
		totalQuantity += qty
		if qty > dominantQuantity || (qty == dominantQuantity && store < dominantStore) {
			dominantStore = store
			dominantQuantity = qty
		}
	}
	if totalQuantity > 0 && float64(dominantQuantity) > float64(totalQuantity)*o.config.ConsolidationShare {
		recs = append(recs, fmt.Sprintf("Consolidate your shopping at %s to save an extra trip", dominantStore))
	}

	switch month := o.now().Month(); {
	case month == time.November || month == time.December:
		recs = append(recs, "Winter season: watch for discounts on hot drinks and preserved goods")
	case month >= time.June && month <= time.August:
		recs = append(recs, "Summer season: seasonal fruit and vegetables are at their best prices")
	}

	highDiscountLines := 0
	for _, item := range result.Items {
		if item.Discount > o.config.HighDiscountThreshold {
			highDiscountLines++
		}
	}
	if highDiscountLines > 0 {
		recs = append(recs, fmt.Sprintf("%d item(s) in your basket carry a major discount", highDiscountLines))
	}

	return recs
}
