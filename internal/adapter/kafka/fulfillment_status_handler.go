package kafka

import (
	"context"
	"errors"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
)

// SystemAccountID identifies status changes made by the fulfillment feed.
const SystemAccountID = "system:fulfillment"

type StatusUpdater interface {
	Execute(ctx context.Context, caller domain.Principal, orderID, status string) (domain.Order, error)
}

// FulfillmentStatusHandler applies shipping updates through the admin status use case.
type FulfillmentStatusHandler struct {
	Updater StatusUpdater
}

func NewFulfillmentStatusHandler(u StatusUpdater) *FulfillmentStatusHandler {
	return &FulfillmentStatusHandler{Updater: u}
}

func (h *FulfillmentStatusHandler) Handle(ctx context.Context, ev usecase.FulfillmentStatusMsg) error {
	system := domain.Principal{AccountID: SystemAccountID, Role: domain.RoleAdmin}
	_, err := h.Updater.Execute(ctx, system, ev.OrderID, ev.Status)

	// Unknown orders and bad statuses never succeed on retry.
	var ve *usecase.ValidationError
	if errors.Is(err, usecase.ErrNotFound) || errors.As(err, &ve) {
		logging.FromCtx(ctx).Warn("fulfillment event skipped", "order_id", ev.OrderID, "status", ev.Status, "err", err)
		return nil
	}
	return err
}
