// Package session keeps the client-side state of a shopper: the bearer
// token, the signed-in account and the cart. Every mutation is persisted.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/client"
	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrNotInCart  = errors.New("product is not in the cart")
	ErrEmptyCart  = errors.New("cart is empty")
)

type CartItem struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type Session struct {
	Token string          `json:"token,omitempty"`
	User  *domain.Account `json:"user,omitempty"`
	Cart  []CartItem      `json:"cart"`

	path string
}

// Load reads the session stored at path. A missing file yields an empty
// session. A corrupt file yields an empty session and the decode error.
func Load(path string) (*Session, error) {
	s := &Session{path: path, Cart: []CartItem{}}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(b, s); err != nil {
		return &Session{path: path, Cart: []CartItem{}}, fmt.Errorf("decode session: %w", err)
	}
	if s.Cart == nil {
		s.Cart = []CartItem{}
	}
	return s, nil
}

// Save writes the session atomically. Sessions without a path are kept in memory only.
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// SignIn stores the token and account returned by login or register.
func (s *Session) SignIn(token string, user domain.Account) error {
	s.Token = token
	s.User = &user
	return s.Save()
}

func (s *Session) SignedIn() bool { return s.Token != "" }

// Clear drops the token, the account and the cart, and removes the file.
func (s *Session) Clear() error {
	s.Token = ""
	s.User = nil
	s.Cart = []CartItem{}
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Add puts one unit of p in the cart. The quantity never exceeds p.Stock.
func (s *Session) Add(p domain.Product) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	if i := s.find(p.ID); i >= 0 {
		s.Cart[i].Quantity = min(s.Cart[i].Quantity+1, s.Cart[i].Product.Stock)
		return s.Save()
	}
	s.Cart = append(s.Cart, CartItem{Product: p, Quantity: 1})
	return s.Save()
}

func (s *Session) Remove(productID string) error {
	i := s.find(productID)
	if i < 0 {
		return ErrNotInCart
	}
	s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
	return s.Save()
}

// SetQuantity caps q at the product's stock; q < 1 removes the line.
func (s *Session) SetQuantity(productID string, q int) error {
	if q < 1 {
		return s.Remove(productID)
	}
	i := s.find(productID)
	if i < 0 {
		return ErrNotInCart
	}
	s.Cart[i].Quantity = min(q, s.Cart[i].Product.Stock)
	return s.Save()
}

func (s *Session) ClearCart() error {
	s.Cart = []CartItem{}
	return s.Save()
}

// Count is the number of units in the cart.
func (s *Session) Count() int {
	n := 0
	for _, it := range s.Cart {
		n += it.Quantity
	}
	return n
}

// Total is the cart value at the prices seen when items were added.
// The server recomputes it from current prices.
func (s *Session) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Cart {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Draft builds the order submission for the current cart.
func (s *Session) Draft(addr domain.ShippingAddress, pm domain.PaymentMethod) (client.OrderRequest, error) {
	if len(s.Cart) == 0 {
		return client.OrderRequest{}, ErrEmptyCart
	}
	if !pm.Valid() {
		return client.OrderRequest{}, fmt.Errorf("unsupported payment method %q", pm)
	}
	items := make([]client.OrderItem, 0, len(s.Cart))
	for _, it := range s.Cart {
		items = append(items, client.OrderItem{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	if strings.TrimSpace(addr.Email) == "" && s.User != nil {
		addr.Email = s.User.Email
	}
	return client.OrderRequest{
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   string(pm),
		TotalPrice:      s.Total(),
	}, nil
}

func (s *Session) find(productID string) int {
	for i, it := range s.Cart {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
