package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice  = errors.New("price must not be negative")
	ErrPriceScale    = errors.New("price must have at most 2 decimal places")
	ErrPriceTooLarge = errors.New("price must not exceed 1000000000")
	ErrInvalidStock  = errors.New("stock must not be negative")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
	ErrMissingName   = errors.New("name is required")
)

// MaxPrice bounds a catalog price so that line totals always fit the
// decimal128 column, whatever the quantity.
var MaxPrice = decimal.New(1, 9)

const priceScale = 2

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Price.GreaterThan(MaxPrice) {
		return ErrPriceTooLarge
	}
	if !p.Price.Equal(p.Price.Round(priceScale)) {
		return ErrPriceScale
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Stock       *int             `json:"stock"`
	Rating      *float64         `json:"rating"`
}

// Apply returns p with the patch applied. The result is validated.
func (pp ProductPatch) Apply(p Product) (Product, error) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.Rating != nil {
		p.Rating = *pp.Rating
	}
	return p, p.Validate()
}

func (pp ProductPatch) Empty() bool {
	return pp.Name == nil && pp.Description == nil && pp.Price == nil && pp.Category == nil &&
		pp.Image == nil && pp.Stock == nil && pp.Rating == nil
}
