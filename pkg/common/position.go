package common

import (
	"errors"
	"time"

	"kairos/pkg/utility"
	"kairos/pkg/utility/fixed"
)

type PositionSide int
type PositionStatus string
type PositionId = int64

const (
	PositionSideLong PositionSide = iota
	PositionSideShort
)

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusClosed PositionStatus = "closed"
)

var (
	ErrPositionClosed      = errors.New("position is already closed")
	ErrCloseBeforeOpen     = errors.New("close date precedes open date")
	ErrBarPrecedesOpen     = errors.New("bar date does not postdate open date")
	ErrBarNotOrderedByDate = errors.New("bar date does not advance position history")
)

// Position is one open or closed position unit. Bars accumulates the
// daily bars observed while the unit was open, ordered by date.
type Position struct {
	Id         PositionId     `json:"id"`
	Status     PositionStatus `json:"status"`
	Side       PositionSide   `json:"side"`
	Quantity   fixed.Point    `json:"quantity"`
	OpenTime   time.Time      `json:"open_time"`
	OpenPrice  fixed.Point    `json:"open_price"`
	CloseTime  time.Time      `json:"close_time,omitempty"`
	ClosePrice fixed.Point    `json:"close_price,omitempty"`
	StopLoss   fixed.Point    `json:"stop_loss,omitempty"`
	TakeProfit fixed.Point    `json:"take_profit,omitempty"`
	Bars       []Bar          `json:"bars,omitempty"`

	Source        string              `json:"src,omitempty"`
	Symbol        string              `json:"symbol,omitempty"`
	ExecutionID   utility.ExecutionID `json:"eid,omitempty"`
	TraceID       utility.TraceID     `json:"tid,omitempty"`
	OrderTraceIDs []utility.TraceID   `json:"order_tid,omitempty"`
	TimeStamp     time.Time           `json:"ts"`
}

func (p PositionSide) String() string {
	if p == PositionSideShort {
		return "short"
	}
	return "long"
}

func (p *Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// AppendBar records one bar observed while the unit is open. Bars must
// arrive in date order and postdate the entry.
func (p *Position) AppendBar(bar Bar) error {
	if !p.IsOpen() {
		return ErrPositionClosed
	}
	if !bar.TimeStamp.After(p.OpenTime) {
		return ErrBarPrecedesOpen
	}
	if len(p.Bars) > 0 && !bar.TimeStamp.After(p.Bars[len(p.Bars)-1].TimeStamp) {
		return ErrBarNotOrderedByDate
	}
	p.Bars = append(p.Bars, bar)
	return nil
}

// Close finalizes the unit. Closing twice fails.
func (p *Position) Close(closeTime time.Time, closePrice fixed.Point) error {
	if !p.IsOpen() {
		return ErrPositionClosed
	}
	if closeTime.Before(p.OpenTime) {
		return ErrCloseBeforeOpen
	}
	p.Status = PositionStatusClosed
	p.CloseTime = closeTime
	p.ClosePrice = closePrice
	p.TimeStamp = closeTime
	return nil
}

// PointProfit is the realized price-move profit of a closed unit, in
// quote currency points, signed by side. Costs are a concern of the
// analytics layer, not the engine.
func (p *Position) PointProfit() fixed.Point {
	diff := p.ClosePrice.Sub(p.OpenPrice)
	if p.Side == PositionSideShort {
		diff = p.OpenPrice.Sub(p.ClosePrice)
	}
	return diff.Mul(p.Quantity)
}
