package broker

import (
	"fmt"
	"time"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// Fill is the outcome of a pending order triggering on a bar.
type Fill struct {
	Time  time.Time
	Price fixed.Point
}

// ResolveFill decides whether the pending order fills on the given bar
// and at what price. It is a pure function: no state is mutated.
//
// Market orders fill unconditionally at the bar's open. Conditional
// exits fill at their trigger price when touched intrabar, or at the
// bar's open when price gapped through the trigger overnight.
func ResolveFill(order *common.Order, bar common.Bar) (Fill, bool, error) {
	if order.State != common.OrderStatePending {
		return Fill{}, false, fmt.Errorf("%w: %s order for %s is %s",
			ErrResolveNotPending, order.Kind, order.Symbol, order.State)
	}
	if !bar.TimeStamp.After(order.SubmitTime) {
		return Fill{}, false, fmt.Errorf("%w: bar %s, submitted %s",
			ErrBarBeforeSubmission, bar.TimeStamp.Format(time.DateOnly), order.SubmitTime.Format(time.DateOnly))
	}

	switch order.Kind {
	case common.OrderKindMarketEntryLong, common.OrderKindMarketEntryShort,
		common.OrderKindMarketExitLong, common.OrderKindMarketExitShort:
		return Fill{Time: bar.TimeStamp, Price: bar.Open}, true, nil

	case common.OrderKindLimitExitLong:
		// Sell to close above the limit.
		if bar.High.Gt(order.Price) {
			price := order.Price
			if bar.Open.Gt(order.Price) {
				price = bar.Open
			}
			return Fill{Time: bar.TimeStamp, Price: price}, true, nil
		}
		return Fill{}, false, nil

	case common.OrderKindLimitExitShort:
		// Buy to cover below the limit.
		if bar.Low.Lt(order.Price) {
			price := order.Price
			if bar.Open.Lt(order.Price) {
				price = bar.Open
			}
			return Fill{Time: bar.TimeStamp, Price: price}, true, nil
		}
		return Fill{}, false, nil

	case common.OrderKindStopExitLong:
		if bar.Low.Lt(order.Price) {
			price := order.Price
			if bar.Open.Lt(order.Price) {
				price = bar.Open
			}
			return Fill{Time: bar.TimeStamp, Price: price}, true, nil
		}
		return Fill{}, false, nil

	case common.OrderKindStopExitShort:
		if bar.High.Gt(order.Price) {
			price := order.Price
			if bar.Open.Gt(order.Price) {
				price = bar.Open
			}
			return Fill{Time: bar.TimeStamp, Price: price}, true, nil
		}
		return Fill{}, false, nil

	default:
		return Fill{}, false, fmt.Errorf("unsupported order kind: %v", order.Kind)
	}
}
