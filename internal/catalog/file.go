package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileDocument is the on-disk JSON layout accepted by LoadFile.
// Histories carry ISO dates, matching what the backend exports.
type fileDocument struct {
	Products  []Product     `json:"products"`
	Histories []fileHistory `json:"histories"`
}

type fileHistory struct {
	ProductID string       `json:"product_id"`
	Dates     []string     `json:"dates"`
	Prices    []float64    `json:"prices"`
	Points    []PricePoint `json:"points"`
}

// LoadFile reads a catalog (and optional price histories) from a JSON file.
// Histories may be given either as explicit points or as parallel
// dates/prices arrays.
func LoadFile(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	for i, p := range doc.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog file %s: product at index %d has no id", path, i)
		}
		if len(p.Offers) == 0 {
			return nil, fmt.Errorf("catalog file %s: product %s has no offers", path, p.ID)
		}
	}

	histories := make([]PriceHistory, 0, len(doc.Histories))
	for _, h := range doc.Histories {
		hist, err := h.toHistory()
		if err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
		histories = append(histories, hist)
	}

	return NewMemorySource(doc.Products, histories), nil
}

func (h fileHistory) toHistory() (PriceHistory, error) {
	if h.ProductID == "" {
		return PriceHistory{}, fmt.Errorf("history entry has no product_id")
	}
	if len(h.Points) > 0 {
		return PriceHistory{ProductID: h.ProductID, Points: h.Points}, nil
	}
	if len(h.Dates) != len(h.Prices) {
		return PriceHistory{}, fmt.Errorf("history for %s: %d dates but %d prices", h.ProductID, len(h.Dates), len(h.Prices))
	}
	points := make([]PricePoint, len(h.Prices))
	for i, price := range h.Prices {
		date, err := time.Parse(time.RFC3339, h.Dates[i])
		if err != nil {
			// Date-only form is common in exports.
			date, err = time.Parse("2006-01-02", h.Dates[i])
			if err != nil {
				return PriceHistory{}, fmt.Errorf("history for %s: bad date %q", h.ProductID, h.Dates[i])
			}
		}
		points[i] = PricePoint{Date: date, Price: price}
	}
	return PriceHistory{ProductID: h.ProductID, Points: points}, nil
}
