package bus

import (
	"context"

	"kairos/pkg/common"
)

type EventHandler[T any] func(context.Context, T)

type BarEventHandler EventHandler[common.Bar]
type OrderEventHandler EventHandler[common.Order]
type OrderExecutedEventHandler EventHandler[common.Order]
type OrderCanceledEventHandler EventHandler[common.Order]
type PositionOpenedEventHandler EventHandler[common.Position]
type PositionClosedEventHandler EventHandler[common.Position]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
