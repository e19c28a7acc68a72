package http

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
)

type memProducts struct {
	mu    sync.Mutex
	items map[string]domain.Product
	seq   int
}

func newMemProducts(ps ...domain.Product) *memProducts {
	m := &memProducts{items: map[string]domain.Product{}}
	for _, p := range ps {
		m.items[p.ID] = p
	}
	return m
}

func (m *memProducts) FindByID(_ context.Context, id string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return domain.Product{}, usecase.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context, f usecase.ProductFilter) ([]domain.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []domain.Product
	for _, p := range m.items {
		if f.Category == "" || p.Category == f.Category {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := f.Skip
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return all[start:end], total, nil
}

func (m *memProducts) Categories(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range m.items {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("new-%d", m.seq)
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, p domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[p.ID]; !ok {
		return usecase.ErrNotFound
	}
	m.items[p.ID] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memOrders struct {
	mu    sync.Mutex
	items map[string]domain.Order
	seq   int
}

func newMemOrders() *memOrders { return &memOrders{items: map[string]domain.Order{}} }

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	o.ID = fmt.Sprintf("order-%d", m.seq)
	m.items[o.ID] = *o
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return domain.Order{}, usecase.ErrNotFound
	}
	return o, nil
}

func (m *memOrders) ListAll(context.Context) ([]domain.Order, error) {
	return m.filter(func(domain.Order) bool { return true }), nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	return m.filter(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrders) filter(keep func(domain.Order) bool) []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.items {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status domain.Status) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.items[id]
	if !ok {
		return domain.Order{}, usecase.ErrNotFound
	}
	o.Status = status
	m.items[id] = o
	return o, nil
}

type memAccounts struct {
	mu    sync.Mutex
	items map[string]domain.Account
	seq   int
}

func newMemAccounts() *memAccounts { return &memAccounts{items: map[string]domain.Account{}} }

func (m *memAccounts) Create(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.Email == a.Email {
			return usecase.ErrAccountExists
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("acc-%d", m.seq)
	m.items[a.ID] = *a
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return domain.Account{}, usecase.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, usecase.ErrNotFound
}

func (m *memAccounts) List(context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAccounts) UpdateRole(_ context.Context, id string, role domain.Role) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return domain.Account{}, usecase.ErrNotFound
	}
	a.Role = role
	m.items[id] = a
	return a, nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return usecase.ErrNotFound
	}
	delete(m.items, id)
	return nil
}
