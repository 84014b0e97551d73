package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"agriportal_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	got := make(chan string, 2)
	for _, id := range []string{"a", "b"} {
		id := id
		bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, e Event) error {
			got <- id
			return nil
		}))
	}

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-got:
			seen[id] = true
		case <-time.After(time.Second):
			t.Fatalf("handler %d never ran", i)
		}
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("not all handlers ran: %v", seen)
	}
}

func TestPublishIgnoresUnrelatedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	called := make(chan struct{}, 1)
	bus.Subscribe("wanted", HandlerFunc(func(ctx context.Context, e Event) error {
		called <- struct{}{}
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "unwanted"})

	select {
	case <-called:
		t.Fatalf("handler ran for an event it never subscribed to")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishSyncReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	first := errors.New("first failure")
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		return first
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		return errors.New("second failure")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})
	if !errors.Is(err, first) {
		t.Fatalf("expected first error, got %v", err)
	}
}

func TestPublishRecoversPanickingHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	done := make(chan struct{}, 1)
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		panic("boom")
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, e Event) error {
		done <- struct{}{}
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("healthy handler did not run alongside the panicking one")
	}
}
