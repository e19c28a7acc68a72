package usecase

import (
	"context"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error) {
	args := m.Called(ctx, f)
	var out []domain.Product
	if v := args.Get(0); v != nil {
		out = v.([]domain.Product)
	}
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, p domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (domain.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Order), args.Error(1)
}

type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *mockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *mockAccountRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.Account, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *mockAccountRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockIdem struct{ mock.Mock }

func (m *mockIdem) TryLock(ctx context.Context, scope, key string) (bool, error) {
	args := m.Called(ctx, scope, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdem) Release(ctx context.Context, scope, key string) error {
	return m.Called(ctx, scope, key).Error(0)
}

func (m *mockIdem) Remember(ctx context.Context, scope, key, value string) error {
	return m.Called(ctx, scope, key, value).Error(0)
}

func (m *mockIdem) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	args := m.Called(ctx, scope, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockEvents) PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error {
	return m.Called(ctx, msg).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) SetStatus(ctx context.Context, orderID, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *mockCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

type recordingMetrics struct {
	placed   []decimal.Decimal
	rejected []string
}

func (r *recordingMetrics) OrderPlaced(total decimal.Decimal) { r.placed = append(r.placed, total) }
func (r *recordingMetrics) OrderRejected(reason string)       { r.rejected = append(r.rejected, reason) }

var (
	alice = domain.Principal{AccountID: "u-alice", Role: domain.RoleUser}
	bob   = domain.Principal{AccountID: "u-bob", Role: domain.RoleUser}
	admin = domain.Principal{AccountID: "u-admin", Role: domain.RoleAdmin}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
