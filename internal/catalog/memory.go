package catalog

import "context"

// MemorySource is an immutable in-memory catalog and history provider.
// It backs the CLI and tests; the server normally uses the Postgres store.
type MemorySource struct {
	products []Product
	byID     map[string]Product
	history  map[string]PriceHistory
}

// NewMemorySource builds a MemorySource from a product list and an optional
// set of price histories keyed by product id. Input slices are not copied;
// callers must not mutate them afterwards.
func NewMemorySource(products []Product, histories []PriceHistory) *MemorySource {
	s := &MemorySource{
		products: products,
		byID:     make(map[string]Product, len(products)),
		history:  make(map[string]PriceHistory, len(histories)),
	}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	for _, h := range histories {
		s.history[h.ProductID] = h
	}
	return s
}

// Product implements Source.
func (s *MemorySource) Product(ctx context.Context, id string) (Product, bool, error) {
	p, ok := s.byID[id]
	return p, ok, nil
}

// Products implements Source. The returned slice preserves insertion order.
func (s *MemorySource) Products(ctx context.Context) ([]Product, error) {
	return s.products, nil
}

// History implements HistorySource.
func (s *MemorySource) History(ctx context.Context, productID string) (PriceHistory, bool, error) {
	h, ok := s.history[productID]
	return h, ok, nil
}
