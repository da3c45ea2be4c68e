package middleware

import (
	"context"

	"go.uber.org/zap"

	"kairos/pkg/bus"
	"kairos/pkg/common"
)

type Telemetry struct {
	logger *zap.Logger

	barEventCounter            int64
	orderEventCounter          int64
	orderExecutedEventCounter  int64
	orderCanceledEventCounter  int64
	positionOpenedEventCounter int64
	positionClosedEventCounter int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		t.barEventCounter++
		handler(ctx, bar)
	}
}

func (t *Telemetry) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderExecuted(handler bus.OrderExecutedEventHandler) bus.OrderExecutedEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderExecutedEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderCanceled(handler bus.OrderCanceledEventHandler) bus.OrderCanceledEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderCanceledEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithPositionOpened(handler bus.PositionOpenedEventHandler) bus.PositionOpenedEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionOpenedEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionClosedEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("telemetry statistics",
		zap.Int64("bar_events", t.barEventCounter),
		zap.Int64("order_events", t.orderEventCounter),
		zap.Int64("order_executed_events", t.orderExecutedEventCounter),
		zap.Int64("order_canceled_events", t.orderCanceledEventCounter),
		zap.Int64("position_opened_events", t.positionOpenedEventCounter),
		zap.Int64("position_closed_events", t.positionClosedEventCounter))
}
