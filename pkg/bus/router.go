package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kairos/pkg/common"
)

// Router dispatches engine events to the wired handlers. Dispatch is
// synchronous: Post invokes the handler before returning, which keeps
// the per-date processing pass deterministic.
type Router struct {
	BarHandler            BarEventHandler
	OrderHandler          OrderEventHandler
	OrderExecutedHandler  OrderExecutedEventHandler
	OrderCanceledHandler  OrderCanceledEventHandler
	PositionOpenedHandler PositionOpenedEventHandler
	PositionClosedHandler PositionClosedEventHandler

	postCount     uint64
	dispatchFails uint64
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) Post(ctx context.Context, id EventId, data interface{}) error {
	r.postCount++
	if err := r.dispatch(ctx, id, data); err != nil {
		r.dispatchFails++
		return err
	}
	return nil
}

func (r *Router) Statistics() Statistics {
	return Statistics{
		PostCount:     r.postCount,
		DispatchFails: r.dispatchFails,
	}
}

func (r *Router) dispatch(ctx context.Context, id EventId, data interface{}) error {
	switch id {
	case BarEvent:
		bar, ok := data.(common.Bar)
		if !ok {
			return errors.New("invalid type assertion for bar event")
		}
		if r.BarHandler != nil {
			r.BarHandler(ctx, bar)
		} else {
			slog.Debug("bar handler is nil")
		}
	case OrderEvent:
		order, ok := data.(common.Order)
		if !ok {
			return errors.New("invalid type assertion for order event")
		}
		if r.OrderHandler != nil {
			r.OrderHandler(ctx, order)
		} else {
			slog.Debug("order handler is nil")
		}
	case OrderExecutedEvent:
		order, ok := data.(common.Order)
		if !ok {
			return errors.New("invalid type assertion for order executed event")
		}
		if r.OrderExecutedHandler != nil {
			r.OrderExecutedHandler(ctx, order)
		} else {
			slog.Debug("order executed handler is nil")
		}
	case OrderCanceledEvent:
		order, ok := data.(common.Order)
		if !ok {
			return errors.New("invalid type assertion for order canceled event")
		}
		if r.OrderCanceledHandler != nil {
			r.OrderCanceledHandler(ctx, order)
		} else {
			slog.Debug("order canceled handler is nil")
		}
	case PositionOpenedEvent:
		pos, ok := data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position opened event")
		}
		if r.PositionOpenedHandler != nil {
			r.PositionOpenedHandler(ctx, pos)
		} else {
			slog.Debug("position opened handler is nil")
		}
	case PositionClosedEvent:
		pos, ok := data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position closed event")
		}
		if r.PositionClosedHandler != nil {
			r.PositionClosedHandler(ctx, pos)
		} else {
			slog.Debug("position closed handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", id)
	}
	return nil
}
