package usecase

import (
	"context"
	"fmt"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
)

type OrderQueries struct {
	orders OrderRepo
	cache  OrderCache // optional
}

func NewOrderQueries(orders OrderRepo, cache OrderCache) *OrderQueries {
	return &OrderQueries{orders: orders, cache: cache}
}

func (q *OrderQueries) ListAll(ctx context.Context, caller domain.Principal) ([]domain.Order, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	out, err := q.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (q *OrderQueries) ListMine(ctx context.Context, caller domain.Principal) ([]domain.Order, error) {
	if caller.AccountID == "" {
		return nil, ErrUnauthenticated
	}
	out, err := q.orders.ListByUser(ctx, caller.AccountID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return out, nil
}

// Get returns the order only to its owner or an admin.
func (q *OrderQueries) Get(ctx context.Context, caller domain.Principal, id string) (domain.Order, error) {
	o, err := q.orders.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !caller.IsAdmin() && !o.OwnedBy(caller.AccountID) {
		return domain.Order{}, ErrForbidden
	}
	return o, nil
}

// Status reads the cached status first and falls back to the store.
func (q *OrderQueries) Status(ctx context.Context, caller domain.Principal, id string) (string, error) {
	if q.cache != nil && caller.IsAdmin() {
		if s, err := q.cache.GetStatus(ctx, id); err == nil && s != "" {
			return s, nil
		}
	}
	o, err := q.Get(ctx, caller, id)
	if err != nil {
		return "", err
	}
	return string(o.Status), nil
}
