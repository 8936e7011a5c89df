package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartshop/insights-service/internal/catalog"
)

// Store is the Postgres-backed catalog and history provider. Schema:
//
//	products(id, name, category, brand, rating, availability)
//	offers(product_id, store, price, discount, position)
//	price_history(product_id, observed_on, price)
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a catalog store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Product implements catalog.Source.
func (s *Store) Product(ctx context.Context, id string) (catalog.Product, bool, error) {
	var p catalog.Product
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, category, brand, rating, availability
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Rating, &p.Availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Product{}, false, nil
		}
		return catalog.Product{}, false, fmt.Errorf("query product %s: %w", id, err)
	}

	offers, err := s.offersFor(ctx, id)
	if err != nil {
		return catalog.Product{}, false, err
	}
	p.Offers = offers
	return p, true, nil
}

// Products implements catalog.Source. Products are returned in id order so
// tie-breaks downstream stay deterministic.
func (s *Store) Products(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, brand, rating, availability
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Rating, &p.Availability); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}

	for i := range products {
		offers, err := s.offersFor(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Offers = offers
	}
	return products, nil
}

// History implements catalog.HistorySource.
func (s *Store) History(ctx context.Context, productID string) (catalog.PriceHistory, bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT observed_on, price
		FROM price_history
		WHERE product_id = $1
		ORDER BY observed_on
	`, productID)
	if err != nil {
		return catalog.PriceHistory{}, false, fmt.Errorf("query history %s: %w", productID, err)
	}
	defer rows.Close()

	history := catalog.PriceHistory{ProductID: productID}
	for rows.Next() {
		var point catalog.PricePoint
		if err := rows.Scan(&point.Date, &point.Price); err != nil {
			return catalog.PriceHistory{}, false, fmt.Errorf("scan history point: %w", err)
		}
		history.Points = append(history.Points, point)
	}
	if rows.Err() != nil {
		return catalog.PriceHistory{}, false, fmt.Errorf("iterate history: %w", rows.Err())
	}

	if len(history.Points) == 0 {
		return catalog.PriceHistory{}, false, nil
	}
	return history, true, nil
}

// offersFor loads a product's offers preserving their stored position, which
// downstream tie-breaking depends on.
func (s *Store) offersFor(ctx context.Context, productID string) ([]catalog.Offer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT store, price, discount
		FROM offers
		WHERE product_id = $1
		ORDER BY position
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query offers %s: %w", productID, err)
	}
	defer rows.Close()

	var offers []catalog.Offer
	for rows.Next() {
		var o catalog.Offer
		if err := rows.Scan(&o.Store, &o.Price, &o.Discount); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate offers: %w", rows.Err())
	}
	return offers, nil
}
