package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
)

type ListProductsInput struct {
	Category string
	Page     int
	Limit    int
}

type ProductPage struct {
	Products    []domain.Product `json:"products"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Total       int64            `json:"total"`
}

type Catalog struct {
	repo         ProductRepo
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewCatalog(repo ProductRepo, defaultLimit, maxLimit int) *Catalog {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Catalog{repo: repo, defaultLimit: defaultLimit, maxLimit: maxLimit, now: time.Now}
}

func (uc *Catalog) List(ctx context.Context, in ListProductsInput) (ProductPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = uc.defaultLimit
	}
	if limit > uc.maxLimit {
		limit = uc.maxLimit
	}
	// keeps (page-1)*limit from wrapping negative
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	products, total, err := uc.repo.List(ctx, ProductFilter{
		Category: strings.TrimSpace(in.Category),
		Skip:     int64((page - 1) * limit),
		Limit:    int64(limit),
	})
	if err != nil {
		return ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return ProductPage{
		Products:    products,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
		Total:       total,
	}, nil
}

func (uc *Catalog) Categories(ctx context.Context) ([]string, error) {
	return uc.repo.Categories(ctx)
}

func (uc *Catalog) Get(ctx context.Context, id string) (domain.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *Catalog) Create(ctx context.Context, caller domain.Principal, p domain.Product) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, ErrForbidden
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, invalid("%s", err.Error())
	}
	p.ID = ""
	p.CreatedAt = uc.now().UTC()
	if err := uc.repo.Create(ctx, &p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update applies a partial edit. Orders already placed keep their snapshots.
func (uc *Catalog) Update(ctx context.Context, caller domain.Principal, id string, patch domain.ProductPatch) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, ErrForbidden
	}
	if patch.Empty() {
		return domain.Product{}, invalid("No fields to update")
	}
	cur, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	next, err := patch.Apply(cur)
	if err != nil {
		return domain.Product{}, invalid("%s", err.Error())
	}
	if err := uc.repo.Update(ctx, next); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	return next, nil
}

func (uc *Catalog) Delete(ctx context.Context, caller domain.Principal, id string) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}
