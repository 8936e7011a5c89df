package optimizer

import (
	"fmt"
	"math"
)

// LineItem is one requested product within a basket.
type LineItem struct {
	ProductID string   // Catalog product identifier
	Quantity  int      // Units requested (must be > 0)
	MaxPrice  *float64 // Optional per-line unit price ceiling
}

// BasketRequest contains the parameters for basket optimization.
type BasketRequest struct {
	Items           []LineItem // Requested line items, processed in order
	Budget          *float64   // Optional total budget for advisories
	PreferredStores []string   // Optional soft preference for these stores
}

// ItemBreakdown is the per-line result of a basket optimization.
type ItemBreakdown struct {
	ProductID   string  // Catalog product identifier
	ProductName string  // Display name at optimization time
	Quantity    int     // Units requested
	Store       string  // Store chosen for this line
	UnitPrice   float64 // Chosen unit price before discount
	LineTotal   float64 // UnitPrice * Quantity, rounded to 2 decimals
	Discount    float64 // Per-unit discount at the chosen store
	Savings     float64 // Discount * Quantity, rounded to 2 decimals
}

// BasketResult is the aggregate outcome of a basket optimization.
// Skipped lines (unknown product, no offer under the ceiling) simply do not
// appear in Items.
type BasketResult struct {
	Items             []ItemBreakdown // One entry per fulfilled line, input order
	TotalCost         float64         // Sum of line totals
	TotalSavings      float64         // Sum of line savings
	StoreDistribution map[string]int  // Store -> total quantity routed there
	Recommendations   []string        // Advisories in fixed priority order
}

// Validate checks the structural invariants of the request. Violations are
// the only fatal errors basket optimization produces; everything else
// degrades to partial results.
func (r *BasketRequest) Validate(maxItems int) error {
	if len(r.Items) > maxItems {
		return ErrInvalidRequest{Field: "items", Reason: "exceeds maximum allowed"}
	}
	for i, item := range r.Items {
		if item.ProductID == "" {
			return ErrInvalidRequest{Field: "items", Reason: fmt.Sprintf("item at index %d has no product id", i), Index: i}
		}
		if item.Quantity <= 0 {
			return ErrInvalidRequest{Field: "items", Reason: fmt.Sprintf("item at index %d has non-positive quantity", i), Index: i}
		}
		if item.MaxPrice != nil && *item.MaxPrice < 0 {
			return ErrInvalidRequest{Field: "items", Reason: fmt.Sprintf("item at index %d has negative max price", i), Index: i}
		}
	}
	if r.Budget != nil && *r.Budget < 0 {
		return ErrInvalidRequest{Field: "budget", Reason: "must be non-negative"}
	}
	return nil
}

// ErrInvalidRequest is returned when a basket request violates its contract.
type ErrInvalidRequest struct {
	Field  string
	Reason string
	Index  int
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
