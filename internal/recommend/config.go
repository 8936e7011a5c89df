package recommend

// Config contains the scoring policy for preference recommendations. The
// weights are additive and no factor can push a score negative.
type Config struct {
	CategoryWeight float64 // Added on preferred-category match
	PriceWeight    float64 // Scaled by how far below the ceiling the price sits
	BrandWeight    float64 // Added on preferred-brand match
	RatingWeight   float64 // Scaled by rating/5
	DiscountWeight float64 // Added when any offer carries a discount

	RetainThreshold float64 // Products scoring above this are recommended
	StrongMatch     float64 // Score above which the match is called strong
	GoodMatch       float64 // Score above which the match is called good

	HighRating            float64 // Rating that earns a justification clause
	HighDiscountThreshold float64 // Chosen-offer discount that earns a clause

	DefaultPriceCeiling float64 // Ceiling assumed when the profile has none
	MaxResults          int     // Recommendations returned at most
}

// DefaultConfig returns the default recommendation scoring policy.
func DefaultConfig() *Config {
	return &Config{
		CategoryWeight:        0.4,
		PriceWeight:           0.3,
		BrandWeight:           0.2,
		RatingWeight:          0.1,
		DiscountWeight:        0.1,
		RetainThreshold:       0.5,
		StrongMatch:           0.8,
		GoodMatch:             0.6,
		HighRating:            4.5,
		HighDiscountThreshold: 1.0,
		DefaultPriceCeiling:   50.0,
		MaxResults:            10,
	}
}
