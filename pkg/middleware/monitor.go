package middleware

import (
	"context"
	"log/slog"

	"kairos/pkg/bus"
	"kairos/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorBars
	MonitorOrders
	MonitorOrdersExecuted
	MonitorOrdersCanceled
	MonitorPositionsOpened
	MonitorPositionsClosed
)

type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		if m.flags&MonitorBars != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "bar", bar)
		}
		handler(ctx, bar)
	}
}

func (m *Monitor) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrders != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderExecuted(handler bus.OrderExecutedEventHandler) bus.OrderExecutedEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrdersExecuted != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_executed", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderCanceled(handler bus.OrderCanceledEventHandler) bus.OrderCanceledEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrdersCanceled != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_canceled", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithPositionOpened(handler bus.PositionOpenedEventHandler) bus.PositionOpenedEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsOpened != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_open", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsClosed != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_closed", position)
		}
		handler(ctx, position)
	}
}
