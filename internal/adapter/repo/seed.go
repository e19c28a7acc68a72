package repo

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed/products.yaml
var seedCatalog []byte

type seedProduct struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       string  `yaml:"price"`
	Category    string  `yaml:"category"`
	Image       string  `yaml:"image"`
	Stock       int     `yaml:"stock"`
	Rating      float64 `yaml:"rating"`
}

// SeedProducts parses the embedded catalog.
func SeedProducts(now time.Time) ([]domain.Product, error) {
	var raw []seedProduct
	if err := yaml.Unmarshal(seedCatalog, &raw); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	out := make([]domain.Product, 0, len(raw))
	for i, s := range raw {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %q price: %w", s.Name, err)
		}
		p := domain.Product{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       price,
			Category:    s.Category,
			Image:       s.Image,
			Stock:       s.Stock,
			Rating:      s.Rating,
			// keep file order when listing newest first
			CreatedAt: now.Add(-time.Duration(i) * time.Second),
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", s.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// SeedIfEmpty inserts the embedded catalog when no product exists yet.
// It returns the number of inserted products.
func SeedIfEmpty(ctx context.Context, r *MongoProductRepo) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	products, err := SeedProducts(time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if err := r.InsertMany(ctx, products); err != nil {
		return 0, fmt.Errorf("insert seed catalog: %w", err)
	}
	return len(products), nil
}
