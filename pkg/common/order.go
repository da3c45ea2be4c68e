package common

import (
	"errors"
	"time"

	"kairos/pkg/utility"
	"kairos/pkg/utility/fixed"
)

type OrderKind int
type OrderState int

const (
	OrderKindMarketEntryLong OrderKind = iota
	OrderKindMarketEntryShort
	OrderKindMarketExitLong
	OrderKindMarketExitShort
	OrderKindLimitExitLong
	OrderKindLimitExitShort
	OrderKindStopExitLong
	OrderKindStopExitShort
)

const (
	OrderStatePending OrderState = iota
	OrderStateExecuted
	OrderStateCanceled
)

var (
	ErrOrderResolved         = errors.New("order is already resolved")
	ErrFillBeforeSubmission  = errors.New("fill date does not postdate submission date")
	ErrOrderQuantityNotValid = errors.New("order quantity must be positive")
)

// Order is one trading intent with a monotonic lifecycle:
// Pending -> Executed or Pending -> Canceled, terminal thereafter.
// Quantity is an unsigned magnitude, the side is carried by the kind.
type Order struct {
	Kind       OrderKind   `json:"kind"`
	State      OrderState  `json:"state"`
	Quantity   fixed.Point `json:"quantity"`
	SubmitTime time.Time   `json:"submit_time"`

	// Trigger price for limit and stop exit kinds, unused otherwise.
	Price fixed.Point `json:"price,omitempty"`

	// Optional attachments carried by entry kinds onto the resulting
	// position unit.
	StopLoss   fixed.Point `json:"stop_loss,omitempty"`
	TakeProfit fixed.Point `json:"take_profit,omitempty"`

	FillTime  time.Time   `json:"fill_time,omitempty"`
	FillPrice fixed.Point `json:"fill_price,omitempty"`

	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

func (k OrderKind) IsEntry() bool {
	return k == OrderKindMarketEntryLong || k == OrderKindMarketEntryShort
}

func (k OrderKind) IsExit() bool {
	return !k.IsEntry()
}

// IsLong reports the direction of the position the order targets. An
// exit-long order closes a long position.
func (k OrderKind) IsLong() bool {
	switch k {
	case OrderKindMarketEntryLong, OrderKindMarketExitLong,
		OrderKindLimitExitLong, OrderKindStopExitLong:
		return true
	default:
		return false
	}
}

func (k OrderKind) String() string {
	switch k {
	case OrderKindMarketEntryLong:
		return "market-entry-long"
	case OrderKindMarketEntryShort:
		return "market-entry-short"
	case OrderKindMarketExitLong:
		return "market-exit-long"
	case OrderKindMarketExitShort:
		return "market-exit-short"
	case OrderKindLimitExitLong:
		return "limit-exit-long"
	case OrderKindLimitExitShort:
		return "limit-exit-short"
	case OrderKindStopExitLong:
		return "stop-exit-long"
	case OrderKindStopExitShort:
		return "stop-exit-short"
	default:
		return "unknown"
	}
}

func (s OrderState) String() string {
	switch s {
	case OrderStatePending:
		return "pending"
	case OrderStateExecuted:
		return "executed"
	case OrderStateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Execute transitions the order to the executed state with the given
// fill. The fill time must be strictly later than the submission time.
func (o *Order) Execute(fillTime time.Time, fillPrice fixed.Point) error {
	if o.State != OrderStatePending {
		return ErrOrderResolved
	}
	if !fillTime.After(o.SubmitTime) {
		return ErrFillBeforeSubmission
	}
	o.State = OrderStateExecuted
	o.FillTime = fillTime
	o.FillPrice = fillPrice
	return nil
}

// Cancel transitions the order to the canceled state. Cancellation is a
// normal lifecycle outcome for a non-triggering conditional order, not
// an error condition.
func (o *Order) Cancel() error {
	if o.State != OrderStatePending {
		return ErrOrderResolved
	}
	o.State = OrderStateCanceled
	return nil
}
