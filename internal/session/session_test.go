package session

import (
	"os"
	"path/filepath"
	"testing"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mouse = domain.Product{ID: "p1", Name: "Mouse", Price: decimal.RequireFromString("10.00"), Stock: 2}
	mug   = domain.Product{ID: "p2", Name: "Mug", Price: decimal.RequireFromString("4.50"), Stock: 10}
)

func tempSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop", "session.json")
	s, err := Load(path)
	require.NoError(t, err)
	return s, path
}

func TestLoad_MissingFile(t *testing.T) {
	s, _ := tempSession(t)

	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Cart)
	assert.NotNil(t, s.Cart)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	s, err := Load(path)

	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Empty(t, s.Cart)
}

func TestSession_PersistsAcrossLoads(t *testing.T) {
	s, path := tempSession(t)
	require.NoError(t, s.SignIn("tok", domain.Account{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser}))
	require.NoError(t, s.Add(mouse))
	require.NoError(t, s.Add(mug))

	again, err := Load(path)

	require.NoError(t, err)
	assert.True(t, again.SignedIn())
	assert.Equal(t, "alice@example.com", again.User.Email)
	assert.Equal(t, 2, again.Count())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSession_AddCapsAtStock(t *testing.T) {
	s, _ := tempSession(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(mouse))
	}

	assert.Equal(t, 2, s.Count())
	assert.ErrorIs(t, s.Add(domain.Product{ID: "p3", Stock: 0}), ErrOutOfStock)
}

func TestSession_SetQuantityAndRemove(t *testing.T) {
	s, _ := tempSession(t)
	require.NoError(t, s.Add(mug))

	require.NoError(t, s.SetQuantity("p2", 99))
	assert.Equal(t, 10, s.Cart[0].Quantity)

	require.NoError(t, s.SetQuantity("p2", 0))
	assert.Empty(t, s.Cart)

	assert.ErrorIs(t, s.SetQuantity("p2", 3), ErrNotInCart)
	assert.ErrorIs(t, s.Remove("p2"), ErrNotInCart)
}

func TestSession_Total(t *testing.T) {
	s := &Session{}
	require.NoError(t, s.Add(mouse))
	require.NoError(t, s.Add(mouse))
	require.NoError(t, s.Add(mug))

	assert.Equal(t, "24.50", s.Total().StringFixed(2))
}

func TestSession_Draft(t *testing.T) {
	s := &Session{User: &domain.Account{Email: "alice@example.com"}}

	_, err := s.Draft(domain.ShippingAddress{}, domain.PaymentPayPal)
	assert.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, s.Add(mouse))
	_, err = s.Draft(domain.ShippingAddress{}, domain.PaymentMethod("Cash"))
	assert.Error(t, err)

	req, err := s.Draft(domain.ShippingAddress{FullName: "Alice"}, domain.PaymentCreditCard)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", req.ShippingAddress.Email)
	assert.Equal(t, "Credit Card", req.PaymentMethod)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 1, req.Items[0].Quantity)
	assert.True(t, req.TotalPrice.Equal(decimal.RequireFromString("10")))
}

func TestSession_Clear(t *testing.T) {
	s, path := tempSession(t)
	require.NoError(t, s.SignIn("tok", domain.Account{ID: "u1", Role: domain.RoleUser}))

	require.NoError(t, s.Clear())

	assert.False(t, s.SignedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Clear(), "clearing twice is fine")
}
