package usecase

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not authorized")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("user already exists")
	ErrDuplicate          = errors.New("duplicate idempotency key")
	// ErrIntegrityFault marks a server-side inconsistency, never a client mistake.
	ErrIntegrityFault = errors.New("order integrity check failed")
)

// ValidationError is a malformed or incomplete request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "Product not found: " + e.ProductID
}

// PriceMismatchError carries both totals so the client can show the difference.
type PriceMismatchError struct {
	Expected decimal.Decimal
	Received decimal.Decimal
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("Total price mismatch: expected %s, received %s",
		e.Expected.StringFixed(2), e.Received.StringFixed(2))
}
