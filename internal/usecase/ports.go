package usecase

import (
	"context"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter selects a page of the catalog. Limit <= 0 means no limit.
type ProductFilter struct {
	Category string
	Skip     int64
	Limit    int64
}

// Repositories return ErrNotFound when the referenced document is absent.
type ProductRepo interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
}

// AccountRepo.Create returns ErrAccountExists when the email is taken.
type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Account, error)
	Delete(ctx context.Context, id string) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}

type EventPublisher interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
	PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}

type OrderMetrics interface {
	OrderPlaced(total decimal.Decimal)
	OrderRejected(reason string)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(a domain.Account) (string, error)
}

type nopMetrics struct{}

func (nopMetrics) OrderPlaced(decimal.Decimal) {}
func (nopMetrics) OrderRejected(string)        {}
