package queue

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/shopspring/decimal"
)

// OrderReader is the read side of the order store.
type OrderReader interface {
	GetByID(ctx context.Context, id string) (domain.Order, error)
}

// IntegrityReporter records orders whose stored total disagrees with their lines.
type IntegrityReporter interface {
	IntegrityFault()
}

// OrderAuditHandler re-loads each placed order and re-checks its total
// against the persisted line items.
type OrderAuditHandler struct {
	Orders    OrderReader
	Tolerance decimal.Decimal
	Report    IntegrityReporter // optional
}

func NewOrderAuditHandler(orders OrderReader, tolerance decimal.Decimal, report IntegrityReporter) *OrderAuditHandler {
	return &OrderAuditHandler{Orders: orders, Tolerance: tolerance, Report: report}
}

// ValidatePlaced rejects order.placed events that name no order.
func ValidatePlaced(msg usecase.OrderPlacedMsg) error {
	if msg.OrderID == "" {
		return errors.New("missing orderId")
	}
	return nil
}

// HandlePlaced is meant to sit behind JSONHandler[usecase.OrderPlacedMsg] with ValidatePlaced.
func (h *OrderAuditHandler) HandlePlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	log := logging.FromCtx(ctx).With("order_id", msg.OrderID, "event_id", msg.EventID)

	o, err := h.Orders.GetByID(ctx, msg.OrderID)
	if errors.Is(err, usecase.ErrNotFound) {
		return ErrPoison{Err: fmt.Errorf("order %s not found", msg.OrderID)}
	}
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}

	if err := o.VerifyTotals(h.Tolerance); err != nil {
		// not retryable: the stored document is what it is
		log.Error("order integrity fault", "total", o.TotalPrice.StringFixed(2),
			"lines", domain.SumLines(o.Items).StringFixed(2))
		if h.Report != nil {
			h.Report.IntegrityFault()
		}
		return nil
	}
	log.Info("order confirmed", "total", o.TotalPrice.StringFixed(2), "items", len(o.Items))
	return nil
}
