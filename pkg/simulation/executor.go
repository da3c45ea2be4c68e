package simulation

import (
	"context"
	"errors"
	"time"

	"kairos/pkg/broker"
	"kairos/pkg/bus"
	"kairos/pkg/market"
)

// ErrDone signals that the executor has stepped past the last trading
// day of the simulated range.
var ErrDone = errors.New("simulation finished")

// Executor drives a backtest one trading day at a time. Each step
// first lets the broker resolve the orders left pending from earlier
// days against the new day's bars, then publishes the bars so the
// strategy can react and submit orders for the following days.
type Executor struct {
	router  *bus.Router
	broker  *broker.Broker
	history *market.History

	days []time.Time
	idx  int
}

func NewExecutor(router *bus.Router, b *broker.Broker, history *market.History, from, to time.Time) *Executor {
	return &Executor{
		router:  router,
		broker:  b,
		history: history,
		days:    history.TradingDays(from, to),
	}
}

// CurrentDay reports the day the next DoOnce call will simulate.
func (e *Executor) CurrentDay() (time.Time, bool) {
	if e.idx >= len(e.days) {
		return time.Time{}, false
	}
	return e.days[e.idx], true
}

func (e *Executor) DoOnce(ctx context.Context) error {
	if e.idx >= len(e.days) {
		return ErrDone
	}
	day := e.days[e.idx]
	e.idx++

	if err := e.broker.ProcessPendingOrders(ctx, day); err != nil {
		return err
	}

	for _, bar := range e.history.BarsOn(day) {
		if err := e.router.Post(ctx, bus.BarEvent, bar); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := e.DoOnce(ctx); err != nil {
				if errors.Is(err, ErrDone) {
					return nil
				}
				return err
			}
		}
	}
}
