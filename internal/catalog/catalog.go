// Package catalog defines the product and price-history data model shared by
// the insight engines, together with the provider interfaces that supply it.
// The engines never care where the data came from; any conforming provider
// (Postgres, JSON dump, in-memory fixture) works.
package catalog

import (
	"context"
	"time"
)

// Offer is one store's price for a product.
type Offer struct {
	Store    string  `json:"store"`
	Price    float64 `json:"price"`    // Unit price, non-negative
	Discount float64 `json:"discount"` // Absolute discount amount, 0 <= Discount <= Price
}

// EffectivePrice returns the unit price after discount.
// This is the comparison key for "best" offers everywhere in the service.
func (o Offer) EffectivePrice() float64 {
	p := o.Price - o.Discount
	if p < 0 {
		return 0
	}
	return p
}

// Product is a single catalog entry with its current offers across chains.
// Products are immutable for the duration of a request.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Offers       []Offer `json:"prices"`
	Rating       float64 `json:"rating"` // User rating in [0, 5]
	Availability int     `json:"availability"`
}

// MinOfferPrice returns the lowest raw (pre-discount) unit price across offers,
// or 0 if the product has no offers.
func (p Product) MinOfferPrice() float64 {
	if len(p.Offers) == 0 {
		return 0
	}
	min := p.Offers[0].Price
	for _, o := range p.Offers[1:] {
		if o.Price < min {
			min = o.Price
		}
	}
	return min
}

// PricePoint is one observed price on one day.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceHistory is the chronologically ordered price series for a product.
type PriceHistory struct {
	ProductID string       `json:"product_id"`
	Points    []PricePoint `json:"points"`
}

// Prices returns just the price values, oldest first.
func (h PriceHistory) Prices() []float64 {
	out := make([]float64, len(h.Points))
	for i, p := range h.Points {
		out[i] = p.Price
	}
	return out
}

// Source supplies the read-only product catalog.
type Source interface {
	// Product looks up a single product by id.
	Product(ctx context.Context, id string) (Product, bool, error)

	// Products returns the full catalog in stable order.
	Products(ctx context.Context) ([]Product, error)
}

// HistorySource supplies historical price series.
type HistorySource interface {
	// History returns the price history for a product, or ok=false if the
	// product has no recorded history.
	History(ctx context.Context, productID string) (PriceHistory, bool, error)
}
