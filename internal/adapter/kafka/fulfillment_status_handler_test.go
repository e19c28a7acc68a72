package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) Execute(ctx context.Context, caller domain.Principal, orderID, status string) (domain.Order, error) {
	args := m.Called(ctx, caller, orderID, status)
	return args.Get(0).(domain.Order), args.Error(1)
}

func TestFulfillmentStatusHandler_Handle(t *testing.T) {
	system := domain.Principal{AccountID: SystemAccountID, Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "applied", err: nil},
		{name: "unknown order skipped", err: fmt.Errorf("load: %w", usecase.ErrNotFound)},
		{name: "bad status skipped", err: &usecase.ValidationError{Message: "Invalid status"}},
		{name: "store failure retried", err: errors.New("mongo down"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := new(mockUpdater)
			u.On("Execute", mock.Anything, system, "o-1", "Shipped").Return(domain.Order{}, tt.err).Once()
			h := NewFulfillmentStatusHandler(u)

			err := h.Handle(context.Background(), usecase.FulfillmentStatusMsg{OrderID: "o-1", Status: "Shipped"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			u.AssertExpectations(t)
		})
	}
}
