package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kairos/pkg/bus"
	"kairos/pkg/common"
)

type Performance struct {
	logger *zap.Logger

	totalBarHandlerDur       time.Duration
	totalOrderHandlerDur     time.Duration
	totalOrderExecHandlerDur time.Duration
	totalOrderCancHandlerDur time.Duration
	totalPosOpenHandlerDur   time.Duration
	totalPosClosHandlerDur   time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		startTime := time.Now()
		handler(ctx, bar)
		p.totalBarHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		startTime := time.Now()
		handler(ctx, order)
		p.totalOrderHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrderExecuted(handler bus.OrderExecutedEventHandler) bus.OrderExecutedEventHandler {
	return func(ctx context.Context, order common.Order) {
		startTime := time.Now()
		handler(ctx, order)
		p.totalOrderExecHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrderCanceled(handler bus.OrderCanceledEventHandler) bus.OrderCanceledEventHandler {
	return func(ctx context.Context, order common.Order) {
		startTime := time.Now()
		handler(ctx, order)
		p.totalOrderCancHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithPositionOpened(handler bus.PositionOpenedEventHandler) bus.PositionOpenedEventHandler {
	return func(ctx context.Context, position common.Position) {
		startTime := time.Now()
		handler(ctx, position)
		p.totalPosOpenHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, position common.Position) {
		startTime := time.Now()
		handler(ctx, position)
		p.totalPosClosHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) PrintStatistics(t *Telemetry) {
	if t == nil {
		p.logger.Warn("Telemetry is nil; cannot compute performance statistics")
		return
	}

	var fields []zap.Field

	if t.barEventCounter > 0 {
		avgBar := p.totalBarHandlerDur / time.Duration(t.barEventCounter)
		if avgBar > 0 {
			fields = append(fields,
				zap.Duration("bar_avg_duration", avgBar),
				zap.Duration("bar_total_duration", p.totalBarHandlerDur),
			)
		}
	}

	if t.orderEventCounter > 0 {
		avgOrder := p.totalOrderHandlerDur / time.Duration(t.orderEventCounter)
		if avgOrder > 0 {
			fields = append(fields,
				zap.Duration("order_avg_duration", avgOrder),
				zap.Duration("order_total_duration", p.totalOrderHandlerDur),
			)
		}
	}

	if t.orderExecutedEventCounter > 0 {
		avgOrderExec := p.totalOrderExecHandlerDur / time.Duration(t.orderExecutedEventCounter)
		if avgOrderExec > 0 {
			fields = append(fields,
				zap.Duration("order_executed_avg_duration", avgOrderExec),
				zap.Duration("order_executed_total_duration", p.totalOrderExecHandlerDur),
			)
		}
	}

	if t.orderCanceledEventCounter > 0 {
		avgOrderCanc := p.totalOrderCancHandlerDur / time.Duration(t.orderCanceledEventCounter)
		if avgOrderCanc > 0 {
			fields = append(fields,
				zap.Duration("order_canceled_avg_duration", avgOrderCanc),
				zap.Duration("order_canceled_total_duration", p.totalOrderCancHandlerDur),
			)
		}
	}

	if t.positionOpenedEventCounter > 0 {
		avgPosOpen := p.totalPosOpenHandlerDur / time.Duration(t.positionOpenedEventCounter)
		if avgPosOpen > 0 {
			fields = append(fields,
				zap.Duration("position_open_avg_duration", avgPosOpen),
				zap.Duration("position_open_total_duration", p.totalPosOpenHandlerDur),
			)
		}
	}

	if t.positionClosedEventCounter > 0 {
		avgPosClosed := p.totalPosClosHandlerDur / time.Duration(t.positionClosedEventCounter)
		if avgPosClosed > 0 {
			fields = append(fields,
				zap.Duration("position_closed_avg_duration", avgPosClosed),
				zap.Duration("position_closed_total_duration", p.totalPosClosHandlerDur),
			)
		}
	}

	p.logger.Info("performance statistics", fields...)
}
