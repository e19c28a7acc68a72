package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/google/uuid"
)

// UpdateOrderStatus lets an admin move an order to any status.
// No adjacency between statuses is enforced.
type UpdateOrderStatus struct {
	orders OrderRepo
	cache  OrderCache     // optional
	events EventPublisher // optional
	now    func() time.Time
}

func NewUpdateOrderStatus(orders OrderRepo, cache OrderCache, events EventPublisher) *UpdateOrderStatus {
	return &UpdateOrderStatus{orders: orders, cache: cache, events: events, now: time.Now}
}

func (uc *UpdateOrderStatus) Execute(ctx context.Context, caller domain.Principal, orderID, status string) (domain.Order, error) {
	if !caller.IsAdmin() {
		return domain.Order{}, ErrForbidden
	}
	st := domain.Status(status)
	if !st.Valid() {
		return domain.Order{}, invalid("Invalid order status")
	}

	o, err := uc.orders.UpdateStatus(ctx, orderID, st)
	if errors.Is(err, ErrNotFound) {
		return domain.Order{}, err
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	log := logging.FromCtx(ctx)
	log.Info("order status updated", "order_id", o.ID, "status", o.Status, "by", caller.AccountID)

	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, o.ID, string(o.Status)); err != nil {
			log.Warn("cache order status failed", "order_id", o.ID, "err", err)
		}
	}
	if uc.events != nil {
		msg := OrderStatusChangedMsg{
			EventID:   uuid.NewString(),
			OrderID:   o.ID,
			UserID:    o.UserID,
			Status:    string(o.Status),
			ChangedBy: caller.AccountID,
			ChangedAt: uc.now().UTC(),
		}
		if err := uc.events.PublishStatusChanged(ctx, msg); err != nil {
			log.Warn("publish order.status_changed failed", "order_id", o.ID, "err", err)
		}
	}
	return o, nil
}
