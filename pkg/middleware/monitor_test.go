package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"kairos/pkg/common"
)

func setupTestLogger(_ *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	return buf
}

func TestMiddlewareMonitor_NewMonitor(t *testing.T) {
	m := NewMonitor(MonitorBars | MonitorOrders)
	if m.flags != (MonitorBars | MonitorOrders) {
		t.Errorf("Expected flags %d, got %d", MonitorBars|MonitorOrders, m.flags)
	}
}

func TestMiddlewareMonitor_WithBar(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, bar common.Bar) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorBars)
	wrapped := m.WithBar(handler)

	wrapped(context.Background(), common.Bar{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if !strings.Contains(buf.String(), "bar") {
		t.Error("Log entry not found")
	}
}

func TestMiddlewareMonitor_WithBarNoMonitor(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, bar common.Bar) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorNone)
	wrapped := m.WithBar(handler)

	wrapped(context.Background(), common.Bar{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if strings.Contains(buf.String(), "bar") {
		t.Error("Unexpected log entry")
	}
}

func TestMiddlewareMonitor_MonitorAll(t *testing.T) {
	buf := setupTestLogger(t)

	m := NewMonitor(MonitorAll)
	m.WithOrderCanceled(NoopOrderCancHdl)(context.Background(), common.Order{})

	if !strings.Contains(buf.String(), "order_canceled") {
		t.Error("Log entry not found")
	}
}
