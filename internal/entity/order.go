package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every order status in lifecycle order.
var Statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle step follows s.
// Transitions themselves are not restricted.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentPayPal     PaymentMethod = "PayPal"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCreditCard || p == PaymentPayPal
}

var ErrTotalMismatch = errors.New("order total does not match line items")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the local@domain.tld shape only.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// MissingField returns the json name of the first empty field, or "".
func (a ShippingAddress) MissingField() string {
	fields := []struct{ name, val string }{
		{"fullName", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"phone", a.Phone},
		{"email", a.Email},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			return f.name
		}
	}
	return ""
}

// LineItem is a snapshot of a product taken when the order was placed.
// Price is the line total (unit price times quantity).
type LineItem struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// SnapshotLine copies the current product fields into a new line item.
func SnapshotLine(p Product, quantity int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.Price,
		Price:     p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Image:     p.Image,
	}
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user"`
	Items           []LineItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewOrder builds a Processing order whose total is the sum of its line prices.
func NewOrder(userID string, items []LineItem, addr ShippingAddress, pm PaymentMethod) Order {
	return Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   pm,
		TotalPrice:      SumLines(items),
		Status:          StatusProcessing,
	}
}

func SumLines(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}

// VerifyTotals re-checks the stored total against the line items.
func (o *Order) VerifyTotals(tolerance decimal.Decimal) error {
	if SumLines(o.Items).Sub(o.TotalPrice).Abs().GreaterThan(tolerance) {
		return ErrTotalMismatch
	}
	return nil
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}
