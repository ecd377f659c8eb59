package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, assigned int
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	d.Subscribe(EventTicketAssigned, func(context.Context, Event) error {
		assigned++
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if created != 1 || assigned != 0 {
		t.Fatalf("created=%d assigned=%d, want 1/0", created, assigned)
	}
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventTicketMessageAdded, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketMessageAdded, func(context.Context, Event) error {
		second = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketMessageAdded}); err != nil {
		t.Fatalf("publish returned handler error: %v", err)
	}
	if !second {
		t.Fatal("second handler not invoked after first failed")
	}
}
