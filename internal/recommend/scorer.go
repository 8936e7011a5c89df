// Package recommend ranks the product catalog against a user preference
// profile with a weighted multi-factor score and explains each pick.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartshop/insights-service/internal/catalog"
	"github.com/smartshop/insights-service/internal/optimizer"
)

// Profile is a user's stated shopping preference.
type Profile struct {
	Categories []string // Preferred categories, diacritic-insensitive
	MaxPrice   float64  // Price ceiling; 0 means use the configured default
	Brands     []string // Preferred brands, diacritic-insensitive
}

// Recommendation is one scored product with its best current offer.
type Recommendation struct {
	ProductID string  // Catalog product identifier
	Name      string  // Display name
	Category  string  // Product category
	Brand     string  // Product brand
	BestPrice float64 // Unit price at the best store
	BestStore string  // Store with the lowest effective price
	Discount  float64 // Discount at that store
	Rating    float64 // User rating in [0, 5]
	Score     float64 // Weighted preference score, 2-decimal rounded
	Reason    string  // Human-readable justification
}

// Scorer ranks catalog products against preference profiles.
type Scorer struct {
	catalog catalog.Source
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// NewScorer creates a scorer over the given catalog.
func NewScorer(source catalog.Source, config *Config) *Scorer {
	return &Scorer{
		catalog: source,
		config:  config,
		metrics: NewMetricsRecorder(),
		logger:  log.With().Str("component", "preference_scorer").Logger(),
	}
}

// Recommend scores every catalog product against the profile and returns the
// top matches, best first. Without a category or brand match the price,
// rating and discount factors alone cannot clear the retain threshold, so an
// empty profile yields an empty list under the default policy.
func (s *Scorer) Recommend(ctx context.Context, profile Profile) ([]Recommendation, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.RecordScoringDuration(time.Since(startTime))
	}()

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	ceiling := profile.MaxPrice
	if ceiling <= 0 {
		ceiling = s.config.DefaultPriceCeiling
	}
	categories := foldSet(profile.Categories)
	brands := foldSet(profile.Brands)

	recommendations := make([]Recommendation, 0, s.config.MaxResults)
	for _, product := range products {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(product.Offers) == 0 {
			continue
		}

		score := s.score(product, categories, brands, ceiling)
		if score <= s.config.RetainThreshold {
			continue
		}

		// Unconstrained selection: lowest effective price wins.
		best, _ := optimizer.SelectOffer(product.Offers, nil, nil)

		recommendations = append(recommendations, Recommendation{
			ProductID: product.ID,
			Name:      product.Name,
			Category:  product.Category,
			Brand:     product.Brand,
			BestPrice: best.Price,
			BestStore: best.Store,
			Discount:  best.Discount,
			Rating:    product.Rating,
			Score:     round2(score),
			Reason:    s.reason(product, score, best.Discount),
		})
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > s.config.MaxResults {
		recommendations = recommendations[:s.config.MaxResults]
	}

	s.metrics.RecordRecommendationCount(len(recommendations))
	return recommendations, nil
}

// score computes the weighted preference score for one product. Every factor
// adds a non-negative term.
func (s *Scorer) score(product catalog.Product, categories, brands map[string]struct{}, ceiling float64) float64 {
	score := 0.0

	if _, ok := categories[foldKey(product.Category)]; ok {
		score += s.config.CategoryWeight
	}

	if minPrice := product.MinOfferPrice(); minPrice <= ceiling {
		score += s.config.PriceWeight * (1 - minPrice/ceiling)
	}

	if _, ok := brands[foldKey(product.Brand)]; ok {
		score += s.config.BrandWeight
	}

	score += s.config.RatingWeight * (product.Rating / 5.0)

	for _, offer := range product.Offers {
		if offer.Discount > 0 {
			score += s.config.DiscountWeight
			break
		}
	}

	return score
}

// reason assembles the justification text in priority order: rating,
// discount, match strength, generic fallback.
func (s *Scorer) reason(product catalog.Product, score, chosenDiscount float64) string {
	clauses := []string{}

	if product.Rating >= s.config.HighRating {
		clauses = append(clauses, "high user rating")
	}
	if chosenDiscount > s.config.HighDiscountThreshold {
		clauses = append(clauses, fmt.Sprintf("%.1f PLN off", chosenDiscount))
	}
	if score > s.config.StrongMatch {
		clauses = append(clauses, "strongly matches your preferences")
	} else if score > s.config.GoodMatch {
		clauses = append(clauses, "matches your preferences")
	}

	if len(clauses) == 0 {
		return "Quality product"
	}
	return "Recommended: " + strings.Join(clauses, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
