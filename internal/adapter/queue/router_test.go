package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackCall struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcker struct {
	mu    sync.Mutex
	calls []ackCall
	done  chan struct{}
}

func newFakeAcker() *fakeAcker { return &fakeAcker{done: make(chan struct{}, 16)} }

func (f *fakeAcker) record(c ackCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	f.done <- struct{}{}
}

func (f *fakeAcker) Ack(tag uint64, _ bool) error {
	f.record(ackCall{tag: tag, ack: true})
	return nil
}

func (f *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	f.record(ackCall{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcker) Reject(tag uint64, requeue bool) error {
	f.record(ackCall{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcker) wait(t *testing.T, n int) []ackCall {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for ack %d", i+1)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ackCall(nil), f.calls...)
}

type fakeChannel struct {
	prefetch   int
	deliveries map[string]chan amqp.Delivery
}

func (c *fakeChannel) Qos(prefetchCount, _ int, _ bool) error {
	c.prefetch = prefetchCount
	return nil
}

func (c *fakeChannel) Consume(queue, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	ch, ok := c.deliveries[queue]
	if !ok {
		return nil, errors.New("no such queue")
	}
	return ch, nil
}

func TestRouter_Dispatch(t *testing.T) {
	acker := newFakeAcker()
	r := NewRouter(nil, WithRequeue(true))
	h := HandlerFunc(func(_ context.Context, d amqp.Delivery) error {
		switch string(d.Body) {
		case "ok":
			return nil
		case "poison":
			return ErrPoison{Err: errors.New("bad")}
		}
		return errors.New("transient")
	})

	for tag, body := range map[uint64]string{1: "ok", 2: "poison", 3: "retry"} {
		r.dispatch(r.log, h, amqp.Delivery{Acknowledger: acker, DeliveryTag: tag, Body: []byte(body)})
	}

	calls := acker.wait(t, 3)
	byTag := map[uint64]ackCall{}
	for _, c := range calls {
		byTag[c.tag] = c
	}
	assert.True(t, byTag[1].ack)
	assert.False(t, byTag[2].ack)
	assert.False(t, byTag[2].requeue, "poison is dropped")
	assert.False(t, byTag[3].ack)
	assert.True(t, byTag[3].requeue)
}

func TestRouter_StartConsumesRegisteredQueues(t *testing.T) {
	acker := newFakeAcker()
	deliveries := make(chan amqp.Delivery, 2)
	ch := &fakeChannel{deliveries: map[string]chan amqp.Delivery{"q1": deliveries}}
	r := NewRouter(ch, WithPrefetch(0), WithTimeout(time.Second))

	got := make(chan string, 2)
	r.Register("q1", HandlerFunc(func(_ context.Context, d amqp.Delivery) error {
		got <- string(d.Body)
		return nil
	}))
	require.NoError(t, r.Start())

	deliveries <- amqp.Delivery{Acknowledger: acker, DeliveryTag: 7, Body: []byte("hello")}
	close(deliveries)

	calls := acker.wait(t, 1)
	assert.Equal(t, "hello", <-got)
	assert.True(t, calls[0].ack)
	assert.Equal(t, 50, ch.prefetch, "non-positive prefetch keeps the default")
}

func TestRouter_StartFailsOnUnknownQueue(t *testing.T) {
	r := NewRouter(&fakeChannel{deliveries: map[string]chan amqp.Delivery{}})
	r.Register("missing", HandlerFunc(func(context.Context, amqp.Delivery) error { return nil }))

	assert.Error(t, r.Start())
}
