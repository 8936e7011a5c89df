// Package analytics aggregates market-level insight from the catalog and
// price histories: category activity, average price movement, and per-store
// highlights.
package analytics

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/smartshop/insights-service/internal/catalog"
)

// Windows for price-change aggregation, in samples (one sample per day).
const (
	weekWindow  = 7
	monthWindow = 30
)

// maxConcurrentHistories bounds parallel history lookups.
const maxConcurrentHistories = 8

// MarketTrends is a market-level summary across the whole catalog.
type MarketTrends struct {
	TopCategories   []string          // Categories by product count, descending
	WeekChangePct   float64           // Average price change over the last week, percent
	MonthChangePct  float64           // Average price change over the last month, percent
	BestStores      map[string]string // Store -> what it is best at
	SeasonalInsight string            // Month-driven note
}

// Analyzer computes market trends from the catalog and history providers.
type Analyzer struct {
	catalog catalog.Source
	history catalog.HistorySource
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAnalyzer creates a market trends analyzer.
func NewAnalyzer(source catalog.Source, history catalog.HistorySource) *Analyzer {
	return &Analyzer{
		catalog: source,
		history: history,
		logger:  log.With().Str("component", "market_analyzer").Logger(),
		now:     time.Now,
	}
}

// WithClock overrides the wall clock used for the seasonal insight.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// MarketTrends aggregates the current market summary. Products without
// usable histories simply do not contribute to the change averages.
func (a *Analyzer) MarketTrends(ctx context.Context) (*MarketTrends, error) {
	products, err := a.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	trends := &MarketTrends{
		TopCategories:   topCategories(products, 3),
		BestStores:      storeHighlights(products),
		SeasonalInsight: seasonalInsight(a.now().Month()),
	}

	var (
		mu         sync.Mutex
		weekSum    float64
		weekCount  int
		monthSum   float64
		monthCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentHistories)
	for _, product := range products {
		id := product.ID
		g.Go(func() error {
			history, ok, err := a.history.History(gctx, id)
			if err != nil || !ok {
				if err != nil {
					a.logger.Warn().Err(err).Str("product_id", id).Msg("History lookup failed")
				}
				return nil
			}
			prices := history.Prices()

			week, weekOK := changePct(prices, weekWindow)
			month, monthOK := changePct(prices, monthWindow)

			mu.Lock()
			if weekOK {
				weekSum += week
				weekCount++
			}
			if monthOK {
				monthSum += month
				monthCount++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if weekCount > 0 {
		trends.WeekChangePct = round1(weekSum / float64(weekCount))
	}
	if monthCount > 0 {
		trends.MonthChangePct = round1(monthSum / float64(monthCount))
	}

	return trends, nil
}

// changePct returns the percentage change between the last price and the
// price `window` samples earlier. ok=false when the series is too short or
// the base price is zero.
func changePct(prices []float64, window int) (float64, bool) {
	n := len(prices)
	if n <= window {
		return 0, false
	}
	base := prices[n-1-window]
	if base == 0 {
		return 0, false
	}
	return (prices[n-1] - base) / base * 100, true
}

// topCategories returns the most populated categories, largest first,
// alphabetical within equal counts.
func topCategories(products []catalog.Product, limit int) []string {
	counts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			counts[p.Category]++
		}
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}

// storeHighlights labels each standout store: the one with the deepest
// average discount and the one listing the most products.
func storeHighlights(products []catalog.Product) map[string]string {
	type storeStats struct {
		offers      int
		discountSum float64
	}
	stats := make(map[string]*storeStats)
	for _, p := range products {
		for _, o := range p.Offers {
			st, ok := stats[o.Store]
			if !ok {
				st = &storeStats{}
				stats[o.Store] = st
			}
			st.offers++
			st.discountSum += o.Discount
		}
	}

	highlights := make(map[string]string)
	var bestDiscountStore, widestStore string
	var bestDiscount float64 = -1
	widestRange := -1
	for store, st := range stats {
		avgDiscount := st.discountSum / float64(st.offers)
		if avgDiscount > bestDiscount || (avgDiscount == bestDiscount && store < bestDiscountStore) {
			bestDiscount = avgDiscount
			bestDiscountStore = store
		}
		if st.offers > widestRange || (st.offers == widestRange && store < widestStore) {
			widestRange = st.offers
			widestStore = store
		}
	}
	if bestDiscountStore != "" {
		highlights[bestDiscountStore] = "Best discount rates"
	}
	if widestStore != "" && widestStore != bestDiscountStore {
		highlights[widestStore] = "Widest product range"
	}
	return highlights
}

func seasonalInsight(month time.Month) string {
	switch {
	case month == time.November || month == time.December:
		return "Hot drinks typically climb around 15% during the winter season"
	case month >= time.June && month <= time.August:
		return "Seasonal produce is at its yearly price low"
	default:
		return "No strong seasonal movement expected this month"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
