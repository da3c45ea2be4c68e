package broker

import (
	"context"
	"fmt"
	"time"

	"kairos/pkg/common"
)

// BarSource answers the question "does this symbol have a bar on this
// date, and what is it". A missing bar means a non-trading day for the
// instrument.
type BarSource interface {
	BarOn(symbol string, date time.Time) (common.Bar, bool)
}

// PositionView is the read-only position state the book consults while
// resolving exit orders.
type PositionView interface {
	IsFlat(symbol string) (bool, error)
}

type ExecutedHandler func(context.Context, *common.Order) error
type CanceledHandler func(context.Context, *common.Order) error

// Book holds all pending orders, partitioned by kind into four groups
// resolved in fixed priority: market exits, market entries, stop
// exits, limit exits. The order guarantees exits settle before new
// entries for the same symbol on the same date, and that a touched
// stop takes precedence over a touched limit.
type Book struct {
	marketExits   []*common.Order
	marketEntries []*common.Order
	stopExits     []*common.Order
	limitExits    []*common.Order

	pending []*common.Order

	OnExecuted ExecutedHandler
	OnCanceled CanceledHandler
}

func NewBook() *Book {
	return &Book{}
}

// Submit adds a pending order to its kind group.
func (b *Book) Submit(order *common.Order) error {
	if order.State != common.OrderStatePending {
		return fmt.Errorf("unable to submit %s order: %w", order.Kind, common.ErrOrderResolved)
	}

	switch order.Kind {
	case common.OrderKindMarketExitLong, common.OrderKindMarketExitShort:
		b.marketExits = append(b.marketExits, order)
	case common.OrderKindMarketEntryLong, common.OrderKindMarketEntryShort:
		b.marketEntries = append(b.marketEntries, order)
	case common.OrderKindStopExitLong, common.OrderKindStopExitShort:
		b.stopExits = append(b.stopExits, order)
	case common.OrderKindLimitExitLong, common.OrderKindLimitExitShort:
		b.limitExits = append(b.limitExits, order)
	default:
		return fmt.Errorf("unsupported order kind: %v", order.Kind)
	}

	b.pending = append(b.pending, order)
	return nil
}

// Pending returns the not-yet-resolved orders, oldest first.
func (b *Book) Pending() []*common.Order {
	view := make([]*common.Order, len(b.pending))
	copy(view, b.pending)
	return view
}

func (b *Book) PendingCount() int {
	return len(b.pending)
}

// Process runs one full per-date pass. Orders whose submission date
// has not yet been passed, or whose instrument has no bar on the
// processing date, stay pending and are revisited on the next call.
// Every other visited order resolves to executed or canceled.
func (b *Book) Process(ctx context.Context, date time.Time, bars BarSource, positions PositionView) error {
	var err error
	if b.marketExits, err = b.processGroup(ctx, b.marketExits, date, bars, positions); err != nil {
		return err
	}
	if b.marketEntries, err = b.processGroup(ctx, b.marketEntries, date, bars, positions); err != nil {
		return err
	}
	if b.stopExits, err = b.processGroup(ctx, b.stopExits, date, bars, positions); err != nil {
		return err
	}
	if b.limitExits, err = b.processGroup(ctx, b.limitExits, date, bars, positions); err != nil {
		return err
	}
	return nil
}

func (b *Book) processGroup(ctx context.Context, orders []*common.Order, date time.Time, bars BarSource, positions PositionView) ([]*common.Order, error) {
	remaining := make([]*common.Order, 0, len(orders))

	for idx, order := range orders {
		if !date.After(order.SubmitTime) {
			remaining = append(remaining, order)
			continue
		}

		bar, ok := bars.BarOn(order.Symbol, date)
		if !ok {
			remaining = append(remaining, order)
			continue
		}

		if order.Kind.IsExit() {
			flat, err := positions.IsFlat(order.Symbol)
			if err != nil {
				return keepUnresolved(remaining, orders[idx:]), err
			}
			if flat {
				// A sibling order already flattened the position earlier
				// in this pass. Cancel without consulting the bar.
				if err := b.resolveCanceled(ctx, order); err != nil {
					return keepUnresolved(remaining, orders[idx:]), err
				}
				continue
			}
		}

		fill, filled, err := ResolveFill(order, bar)
		if err != nil {
			return keepUnresolved(remaining, orders[idx:]), err
		}

		if !filled {
			// Non-triggering conditional orders are not retried; the
			// strategy is expected to resubmit on a later date.
			if err := b.resolveCanceled(ctx, order); err != nil {
				return keepUnresolved(remaining, orders[idx:]), err
			}
			continue
		}

		if err := b.resolveExecuted(ctx, order, fill); err != nil {
			return keepUnresolved(remaining, orders[idx:]), err
		}
	}

	return remaining, nil
}

// keepUnresolved carries the unvisited tail of a group into the new
// group slice when a pass aborts mid-group, so the group view stays
// consistent with the pending list. The erroring order itself is kept
// only if it did not resolve before the failure.
func keepUnresolved(remaining []*common.Order, rest []*common.Order) []*common.Order {
	for _, order := range rest {
		if order.State == common.OrderStatePending {
			remaining = append(remaining, order)
		}
	}
	return remaining
}

func (b *Book) resolveExecuted(ctx context.Context, order *common.Order, fill Fill) error {
	if err := order.Execute(fill.Time, fill.Price); err != nil {
		return err
	}
	b.dropPending(order)
	if b.OnExecuted != nil {
		return b.OnExecuted(ctx, order)
	}
	return nil
}

func (b *Book) resolveCanceled(ctx context.Context, order *common.Order) error {
	if err := order.Cancel(); err != nil {
		return err
	}
	b.dropPending(order)
	if b.OnCanceled != nil {
		return b.OnCanceled(ctx, order)
	}
	return nil
}

func (b *Book) dropPending(order *common.Order) {
	for idx, pending := range b.pending {
		if pending == order {
			b.pending = append(b.pending[:idx], b.pending[idx+1:]...)
			return
		}
	}
}
