package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/insights-service/internal/catalog"
)

func scorerOver(products ...catalog.Product) *Scorer {
	return NewScorer(catalog.NewMemorySource(products, nil), DefaultConfig())
}

func TestRecommendFullMatchScoresHigh(t *testing.T) {
	s := scorerOver(catalog.Product{
		ID:       "yogurt-400g",
		Name:     "Yogurt 400g",
		Category: "dairy",
		Brand:    "Danone",
		Rating:   4.8,
		Offers: []catalog.Offer{
			{Store: "LIDL", Price: 4.99, Discount: 1.2},
		},
	})

	results, err := s.Recommend(context.Background(), Profile{
		Categories: []string{"dairy"},
		Brands:     []string{"Danone"},
		MaxPrice:   20,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "yogurt-400g", r.ProductID)
	assert.Equal(t, "LIDL", r.BestStore)
	assert.InDelta(t, 4.99, r.BestPrice, 1e-9)
	// 0.4 category + 0.3*(1-4.99/20) price + 0.2 brand + 0.1*4.8/5 rating + 0.1 discount
	assert.InDelta(t, 1.02, r.Score, 0.005)
}

func TestRecommendZeroMatchExcluded(t *testing.T) {
	s := scorerOver(catalog.Product{
		ID:       "expensive-gadget",
		Name:     "Gadget",
		Category: "electronics",
		Brand:    "NoName",
		Rating:   0,
		Offers: []catalog.Offer{
			{Store: "MediaMarkt", Price: 999.0},
		},
	})

	results, err := s.Recommend(context.Background(), Profile{
		Categories: []string{"dairy"},
		MaxPrice:   20,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendEmptyProfileYieldsNothingByDefault(t *testing.T) {
	// Without a category or brand match the maximum reachable score is
	// exactly the retain threshold, so nothing clears it.
	s := scorerOver(catalog.Product{
		ID:     "eggs-10",
		Name:   "Eggs 10pk",
		Rating: 5.0,
		Offers: []catalog.Offer{
			{Store: "Biedronka", Price: 0.10, Discount: 0.05},
		},
	})

	results, err := s.Recommend(context.Background(), Profile{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendProductsWithoutOffersSkipped(t *testing.T) {
	s := scorerOver(catalog.Product{
		ID:       "ghost",
		Name:     "Delisted product",
		Category: "dairy",
		Rating:   5,
	})

	results, err := s.Recommend(context.Background(), Profile{Categories: []string{"dairy"}})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecommendSortedAndTruncated(t *testing.T) {
	products := make([]catalog.Product, 15)
	for i := range products {
		products[i] = catalog.Product{
			ID:       fmt.Sprintf("p-%02d", i),
			Name:     fmt.Sprintf("Product %02d", i),
			Category: "dairy",
			Rating:   float64(i%5) + 1,
			Offers: []catalog.Offer{
				{Store: "LIDL", Price: float64(i) + 1},
			},
		}
	}
	s := scorerOver(products...)

	results, err := s.Recommend(context.Background(), Profile{
		Categories: []string{"dairy"},
		MaxPrice:   30,
	})
	require.NoError(t, err)
	assert.Len(t, results, 10)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRecommendDiacriticInsensitiveMatching(t *testing.T) {
	s := scorerOver(catalog.Product{
		ID:       "mleko-1l",
		Name:     "Mleko 1L",
		Category: "Nabiał",
		Brand:    "Łaciate",
		Rating:   4.6,
		Offers: []catalog.Offer{
			{Store: "Biedronka", Price: 3.79, Discount: 0.4},
		},
	})

	results, err := s.Recommend(context.Background(), Profile{
		Categories: []string{"nabial"},
		Brands:     []string{"laciate"},
		MaxPrice:   20,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mleko-1l", results[0].ProductID)
}

func TestRecommendReasonClauses(t *testing.T) {
	s := scorerOver(
		catalog.Product{
			ID:       "premium",
			Name:     "Premium Cheese",
			Category: "dairy",
			Brand:    "Hochland",
			Rating:   4.9,
			Offers: []catalog.Offer{
				{Store: "Carrefour", Price: 9.99, Discount: 2.5},
			},
		},
		catalog.Product{
			ID:       "plain",
			Name:     "Plain Cheese",
			Category: "dairy",
			Rating:   3.0,
			Offers: []catalog.Offer{
				{Store: "LIDL", Price: 4.99},
			},
		},
	)

	results, err := s.Recommend(context.Background(), Profile{
		Categories: []string{"dairy"},
		Brands:     []string{"Hochland"},
		MaxPrice:   20,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	premium := results[0]
	assert.Equal(t, "premium", premium.ProductID)
	assert.Contains(t, premium.Reason, "high user rating")
	assert.Contains(t, premium.Reason, "2.5 PLN off")
	assert.Contains(t, premium.Reason, "strongly matches your preferences")

	plain := results[1]
	assert.Equal(t, "plain", plain.ProductID)
	assert.NotContains(t, plain.Reason, "high user rating")
}

func TestRecommendReasonFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetainThreshold = 0.1
	s := NewScorer(catalog.NewMemorySource([]catalog.Product{{
		ID:     "basic",
		Name:   "Basic Rice",
		Rating: 2.0,
		Offers: []catalog.Offer{
			{Store: "LIDL", Price: 30.0},
		},
	}}, nil), cfg)

	results, err := s.Recommend(context.Background(), Profile{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Quality product", results[0].Reason)
}
