package bus

import (
	"context"
	"testing"

	"kairos/pkg/common"
)

func TestBusRouter_Post(t *testing.T) {
	r := NewRouter()

	var handled common.Bar
	r.BarHandler = func(_ context.Context, bar common.Bar) {
		handled = bar
	}

	if err := r.Post(context.Background(), BarEvent, common.Bar{Symbol: "ACME"}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	if handled.Symbol != "ACME" {
		t.Error("Bar handler not called with posted event")
	}

	if r.postCount != 1 {
		t.Errorf("Expected postCount=1, got %d", r.postCount)
	}
}

func TestBusRouter_PostDispatchesSynchronously(t *testing.T) {
	r := NewRouter()

	var order []string
	r.OrderHandler = func(context.Context, common.Order) {
		order = append(order, "handler")
	}

	_ = r.Post(context.Background(), OrderEvent, common.Order{})
	order = append(order, "after post")

	if len(order) != 2 || order[0] != "handler" {
		t.Errorf("Expected handler to run before Post returns, got %v", order)
	}
}

func TestBusRouter_PostNilHandler(t *testing.T) {
	r := NewRouter()

	if err := r.Post(context.Background(), BarEvent, common.Bar{}); err != nil {
		t.Errorf("Post with nil handler failed: %v", err)
	}
}

func TestBusRouter_PostInvalidPayload(t *testing.T) {
	r := NewRouter()

	if err := r.Post(context.Background(), BarEvent, common.Order{}); err == nil {
		t.Error("Expected error for mismatched payload type")
	}

	if r.dispatchFails != 1 {
		t.Errorf("Expected dispatchFails=1, got %d", r.dispatchFails)
	}
}

func TestBusRouter_PostUnknownEvent(t *testing.T) {
	r := NewRouter()

	if err := r.Post(context.Background(), EventId(255), common.Bar{}); err == nil {
		t.Error("Expected error for unknown event id")
	}
}

func TestBusRouter_MergeHandlers(t *testing.T) {
	var first, second bool

	merged := MergeHandlers[common.Position](
		func(context.Context, common.Position) { first = true },
		func(context.Context, common.Position) { second = true },
	)
	merged(context.Background(), common.Position{})

	if !first || !second {
		t.Error("Expected every merged handler to run")
	}
}

func TestBusRouter_Statistics(t *testing.T) {
	r := NewRouter()

	_ = r.Post(context.Background(), BarEvent, common.Bar{})
	_ = r.Post(context.Background(), BarEvent, common.Order{})

	stats := r.Statistics()
	if stats.PostCount != 2 {
		t.Errorf("Expected PostCount=2, got %d", stats.PostCount)
	}
	if stats.DispatchFails != 1 {
		t.Errorf("Expected DispatchFails=1, got %d", stats.DispatchFails)
	}
}
