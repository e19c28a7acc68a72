package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPoison marks a delivery that will never succeed. The Router drops it.
type ErrPoison struct{ Err error }

func (e ErrPoison) Error() string { return "poison message: " + e.Err.Error() }
func (e ErrPoison) Unwrap() error { return e.Err }

// JSONHandler decodes the body into T, runs the optional Validate and then HandleFunc.
// Undecodable or invalid messages are poison.
type JSONHandler[T any] struct {
	Validate   func(T) error
	HandleFunc func(ctx context.Context, msg T) error
}

func (h JSONHandler[T]) Handle(ctx context.Context, d amqp.Delivery) error {
	if d.ContentType != "" && d.ContentType != "application/json" {
		return ErrPoison{Err: fmt.Errorf("%s: unexpected content type %q", d.RoutingKey, d.ContentType)}
	}
	var msg T
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return ErrPoison{Err: fmt.Errorf("decode %s: %w", d.RoutingKey, err)}
	}
	if h.Validate != nil {
		if err := h.Validate(msg); err != nil {
			return ErrPoison{Err: fmt.Errorf("%s: %w", d.RoutingKey, err)}
		}
	}
	return h.HandleFunc(ctx, msg)
}
