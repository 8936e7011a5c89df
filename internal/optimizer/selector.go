package optimizer

import "github.com/smartshop/insights-service/internal/catalog"

// SelectOffer picks the best offer for one product.
//
// Offers above maxPrice (when given) are excluded outright. preferredStores
// is a soft constraint: if at least one surviving offer belongs to a
// preferred store the candidate set narrows to those, otherwise the broader
// set is kept so a preference never empties the result on its own. Among the
// candidates the lowest effective price wins; ties go to the earliest offer
// in input order.
//
// Returns ok=false only when the max-price filter eliminates every offer.
func SelectOffer(offers []catalog.Offer, maxPrice *float64, preferredStores []string) (catalog.Offer, bool) {
	candidates := offers
	if maxPrice != nil {
		candidates = make([]catalog.Offer, 0, len(offers))
		for _, o := range offers {
			if o.Price <= *maxPrice {
				candidates = append(candidates, o)
			}
		}
	}
	if len(candidates) == 0 {
		return catalog.Offer{}, false
	}

	if len(preferredStores) > 0 {
		preferred := make([]catalog.Offer, 0, len(candidates))
		for _, o := range candidates {
			if containsStore(preferredStores, o.Store) {
				preferred = append(preferred, o)
			}
		}
		if len(preferred) > 0 {
			candidates = preferred
		}
	}

	best := candidates[0]
	for _, o := range candidates[1:] {
		if o.EffectivePrice() < best.EffectivePrice() {
			best = o
		}
	}
	return best, true
}

func containsStore(stores []string, store string) bool {
	for _, s := range stores {
		if s == store {
			return true
		}
	}
	return false
}
