package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTolerance absorbs floating point rounding in client totals.
var DefaultTolerance = decimal.RequireFromString("0.01")

type DraftItem struct {
	ProductID string
	Quantity  float64
}

type SubmitOrderInput struct {
	Caller          domain.Principal
	IdempotencyKey  string
	Items           []DraftItem
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
	TotalPrice      *decimal.Decimal
}

// SubmitOrder re-prices a client cart against the catalog and persists the order.
type SubmitOrder struct {
	products  ProductRepo
	orders    OrderRepo
	idem      IdempotencyStore // optional
	events    EventPublisher   // optional
	cache     OrderCache       // optional
	metrics   OrderMetrics
	tolerance decimal.Decimal
	now       func() time.Time
}

func NewSubmitOrder(products ProductRepo, orders OrderRepo, idem IdempotencyStore, events EventPublisher,
	cache OrderCache, metrics OrderMetrics, tolerance decimal.Decimal) *SubmitOrder {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if tolerance.IsNegative() || tolerance.IsZero() {
		tolerance = DefaultTolerance
	}
	return &SubmitOrder{
		products:  products,
		orders:    orders,
		idem:      idem,
		events:    events,
		cache:     cache,
		metrics:   metrics,
		tolerance: tolerance,
		now:       time.Now,
	}
}

// NormalizeQuantity floors q and coerces anything below 1 (or not a number) to 1.
func NormalizeQuantity(q float64) int {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 1
	}
	f := math.Floor(q)
	if f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

func (uc *SubmitOrder) Execute(ctx context.Context, in SubmitOrderInput) (domain.Order, error) {
	log := logging.FromCtx(ctx).With("user_id", in.Caller.AccountID)

	if in.Caller.AccountID == "" {
		return domain.Order{}, ErrUnauthenticated
	}
	if err := validateDraft(in); err != nil {
		uc.metrics.OrderRejected("validation")
		return domain.Order{}, err
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" && uc.idem != nil {
		// Fast path: idempotency recall
		if id, ok, _ := uc.idem.Recall(ctx, in.Caller.AccountID, key); ok {
			if o, err := uc.orders.GetByID(ctx, id); err == nil {
				log.Info("order replayed", "order_id", id)
				return o, nil
			}
		}
		ok, err := uc.idem.TryLock(ctx, in.Caller.AccountID, key)
		if err != nil {
			return domain.Order{}, fmt.Errorf("idempotency lock: %w", err)
		}
		if !ok {
			uc.metrics.OrderRejected("duplicate")
			return domain.Order{}, ErrDuplicate
		}
	}

	order, err := uc.place(ctx, in)
	if err != nil {
		if key != "" && uc.idem != nil {
			if rerr := uc.idem.Release(ctx, in.Caller.AccountID, key); rerr != nil {
				log.Warn("release idempotency key failed", "key", key, "err", rerr)
			}
		}
		uc.metrics.OrderRejected(rejectionReason(err))
		return domain.Order{}, err
	}

	if key != "" && uc.idem != nil {
		if err := uc.idem.Remember(ctx, in.Caller.AccountID, key, order.ID); err != nil {
			log.Warn("remember idempotency key failed", "key", key, "order_id", order.ID, "err", err)
		}
	}
	uc.afterPlaced(ctx, order)
	uc.metrics.OrderPlaced(order.TotalPrice)
	log.Info("order placed", "order_id", order.ID, "total", order.TotalPrice.StringFixed(2), "items", len(order.Items))
	return order, nil
}

func validateDraft(in SubmitOrderInput) error {
	if len(in.Items) == 0 {
		return invalid("Order must contain at least one item")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return invalid("Invalid product data")
		}
	}
	if f := in.ShippingAddress.MissingField(); f != "" {
		return invalid("All shipping address fields are required (missing %s)", f)
	}
	if !domain.ValidEmail(in.ShippingAddress.Email) {
		return invalid("Shipping email is invalid")
	}
	if !domain.PaymentMethod(in.PaymentMethod).Valid() {
		return invalid("Valid payment method is required")
	}
	if in.TotalPrice == nil {
		return invalid("totalPrice is required")
	}
	if in.TotalPrice.IsNegative() {
		return invalid("totalPrice must not be negative")
	}
	return nil
}

func (uc *SubmitOrder) place(ctx context.Context, in SubmitOrderInput) (domain.Order, error) {
	items := make([]domain.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		p, err := uc.products.FindByID(ctx, it.ProductID)
		if errors.Is(err, ErrNotFound) {
			return domain.Order{}, &ProductNotFoundError{ProductID: it.ProductID}
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("load product %s: %w", it.ProductID, err)
		}
		items = append(items, domain.SnapshotLine(p, NormalizeQuantity(it.Quantity)))
	}

	order := domain.NewOrder(in.Caller.AccountID, items, in.ShippingAddress, domain.PaymentMethod(in.PaymentMethod))
	claimed := *in.TotalPrice
	if order.TotalPrice.Sub(claimed).Abs().GreaterThan(uc.tolerance) {
		return domain.Order{}, &PriceMismatchError{Expected: order.TotalPrice, Received: claimed}
	}

	// write-time guard: the stored total must equal the stored lines
	if err := order.VerifyTotals(uc.tolerance); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrIntegrityFault, err)
	}

	order.CreatedAt = uc.now().UTC()
	if err := uc.orders.Create(ctx, &order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}
	return order, nil
}

// afterPlaced runs best-effort side effects; failures are logged only.
func (uc *SubmitOrder) afterPlaced(ctx context.Context, o domain.Order) {
	log := logging.FromCtx(ctx)
	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, o.ID, string(o.Status)); err != nil {
			log.Warn("cache order status failed", "order_id", o.ID, "err", err)
		}
	}
	if uc.events != nil {
		msg := OrderPlacedMsg{
			EventID:    uuid.NewString(),
			OrderID:    o.ID,
			UserID:     o.UserID,
			TotalPrice: o.TotalPrice.StringFixed(2),
			Items:      len(o.Items),
			PlacedAt:   o.CreatedAt,
		}
		if err := uc.events.PublishPlaced(ctx, msg); err != nil {
			log.Warn("publish order.placed failed", "order_id", o.ID, "err", err)
		}
	}
}

func rejectionReason(err error) string {
	var (
		pnf *ProductNotFoundError
		pm  *PriceMismatchError
		ve  *ValidationError
	)
	switch {
	case errors.As(err, &pm):
		return "price_mismatch"
	case errors.As(err, &pnf):
		return "product_not_found"
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, ErrIntegrityFault):
		return "integrity"
	}
	return "persistence"
}
