package usecase

import (
	"context"
	"errors"
	"testing"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderQueries_Get_Ownership(t *testing.T) {
	orders := new(mockOrderRepo)
	q := NewOrderQueries(orders, nil)
	orders.On("GetByID", mock.Anything, "o-1").Return(domain.Order{ID: "o-1", UserID: "u-alice"}, nil)

	_, err := q.Get(context.Background(), alice, "o-1")
	assert.NoError(t, err)

	_, err = q.Get(context.Background(), admin, "o-1")
	assert.NoError(t, err)

	_, err = q.Get(context.Background(), bob, "o-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderQueries_Get_NotFound(t *testing.T) {
	orders := new(mockOrderRepo)
	q := NewOrderQueries(orders, nil)
	orders.On("GetByID", mock.Anything, "nope").Return(domain.Order{}, ErrNotFound)

	_, err := q.Get(context.Background(), alice, "nope")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderQueries_ListAll_AdminOnly(t *testing.T) {
	orders := new(mockOrderRepo)
	q := NewOrderQueries(orders, nil)
	orders.On("ListAll", mock.Anything).Return([]domain.Order{{ID: "o-1"}, {ID: "o-2"}}, nil)

	_, err := q.ListAll(context.Background(), alice)
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := q.ListAll(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderQueries_ListMine(t *testing.T) {
	orders := new(mockOrderRepo)
	q := NewOrderQueries(orders, nil)
	orders.On("ListByUser", mock.Anything, "u-bob").Return([]domain.Order{{ID: "o-9", UserID: "u-bob"}}, nil)

	mine, err := q.ListMine(context.Background(), bob)

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "o-9", mine[0].ID)
}

func TestOrderQueries_Status_CacheThenStore(t *testing.T) {
	orders := new(mockOrderRepo)
	cache := new(mockCache)
	q := NewOrderQueries(orders, cache)
	cache.On("GetStatus", mock.Anything, "o-1").Return("Shipped", nil).Once()
	cache.On("GetStatus", mock.Anything, "o-2").Return("", errors.New("redis down")).Once()
	orders.On("GetByID", mock.Anything, "o-2").Return(domain.Order{ID: "o-2", UserID: "u-alice", Status: domain.StatusDelivered}, nil)

	s, err := q.Status(context.Background(), admin, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", s)

	s, err = q.Status(context.Background(), admin, "o-2")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", s)

	// owners always go through the ownership check
	s, err = q.Status(context.Background(), alice, "o-2")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", s)
	cache.AssertNumberOfCalls(t, "GetStatus", 2)
}
