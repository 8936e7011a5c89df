package optimizer

// Config contains the policy knobs for basket optimization. The advisory
// thresholds are policy, not derived values; they are surfaced here (and in
// the service config) so behavior stays reproducible and tunable.
type Config struct {
	// Validation limits
	MaxBasketItems int // Maximum line items allowed in one request

	// Advisory thresholds
	BudgetComfortRatio    float64 // Under-budget advisory fires below this fraction of budget
	ConsolidationShare    float64 // Single-store advisory fires above this share of total quantity
	HighDiscountThreshold float64 // Per-unit discount that counts as a highlight
}

// DefaultConfig returns the default basket optimization policy.
func DefaultConfig() *Config {
	return &Config{
		MaxBasketItems:        100,
		BudgetComfortRatio:    0.8,
		ConsolidationShare:    0.7,
		HighDiscountThreshold: 1.0,
	}
}
