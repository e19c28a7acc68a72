package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestCgHandler_Process(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("decoded and handled", func(t *testing.T) {
		var got usecase.FulfillmentStatusMsg
		h := &cgHandler{logger: quiet, handle: func(_ context.Context, ev usecase.FulfillmentStatusMsg) error {
			got = ev
			return nil
		}}

		ok := h.process(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"orderId":"o-9","status":"Delivered"}`)})

		assert.True(t, ok)
		assert.Equal(t, usecase.FulfillmentStatusMsg{OrderID: "o-9", Status: "Delivered"}, got)
	})

	t.Run("undecodable payload is committed", func(t *testing.T) {
		called := false
		h := &cgHandler{logger: quiet, handle: func(context.Context, usecase.FulfillmentStatusMsg) error {
			called = true
			return nil
		}}

		assert.True(t, h.process(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")}))
		assert.False(t, called)
	})

	t.Run("handler failure is not committed", func(t *testing.T) {
		h := &cgHandler{logger: quiet, handle: func(context.Context, usecase.FulfillmentStatusMsg) error {
			return errors.New("boom")
		}}

		assert.False(t, h.process(context.Background(), &sarama.ConsumerMessage{Value: []byte(`{"orderId":"o-1","status":"Shipped"}`)}))
	})
}
