package broker

import (
	"fmt"
	"time"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// Instrument tracks the open position units for one symbol. Units are
// kept in pyramiding order and addressed by 1-based unit numbers. All
// units of a non-flat instrument share one side.
type Instrument struct {
	symbol string
	units  []*common.Position
}

func NewInstrument(symbol string) *Instrument {
	return &Instrument{symbol: symbol}
}

func (i *Instrument) Symbol() string {
	return i.symbol
}

func (i *Instrument) IsFlat() bool {
	return len(i.units) == 0
}

func (i *Instrument) IsLong() bool {
	return !i.IsFlat() && i.units[0].Side == common.PositionSideLong
}

func (i *Instrument) IsShort() bool {
	return !i.IsFlat() && i.units[0].Side == common.PositionSideShort
}

func (i *Instrument) UnitCount() int {
	return len(i.units)
}

// Units returns the open units in pyramiding order.
func (i *Instrument) Units() []*common.Position {
	return i.units
}

// Volume is the summed quantity of all open units.
func (i *Instrument) Volume() fixed.Point {
	volume := fixed.Zero
	for _, unit := range i.units {
		volume = volume.Add(unit.Quantity)
	}
	return volume
}

// AddUnit pushes a new open unit. Pyramiding is permitted only in the
// direction of the units already held.
func (i *Instrument) AddUnit(unit *common.Position) error {
	if !i.IsFlat() && unit.Side != i.units[0].Side {
		return fmt.Errorf("%w: %s is %s, unit is %s",
			ErrSideMismatch, i.symbol, i.units[0].Side, unit.Side)
	}
	i.units = append(i.units, unit)
	return nil
}

// AppendBar records the bar on every open unit. Called once per
// processing date, before order resolution, so a unit closed on that
// date still carries the day's bar.
func (i *Instrument) AppendBar(bar common.Bar) error {
	for _, unit := range i.units {
		if err := unit.AppendBar(bar); err != nil {
			return fmt.Errorf("unable to append bar to unit %d of %s: %w", unit.Id, i.symbol, err)
		}
	}
	return nil
}

// CloseUnit closes exactly one unit addressed by its 1-based number and
// removes it from the open set.
func (i *Instrument) CloseUnit(unitNumber int, closeTime time.Time, closePrice fixed.Point) (*common.Position, error) {
	if unitNumber < 1 || unitNumber > len(i.units) {
		return nil, fmt.Errorf("%w: %s unit %d of %d",
			ErrUnitNotFound, i.symbol, unitNumber, len(i.units))
	}

	unit := i.units[unitNumber-1]
	if err := unit.Close(closeTime, closePrice); err != nil {
		return nil, err
	}

	i.units = append(i.units[:unitNumber-1], i.units[unitNumber:]...)
	return unit, nil
}

// CloseAll closes every open unit at the same price and date, in
// pyramiding order.
func (i *Instrument) CloseAll(closeTime time.Time, closePrice fixed.Point) ([]*common.Position, error) {
	closed := make([]*common.Position, 0, len(i.units))
	for _, unit := range i.units {
		if err := unit.Close(closeTime, closePrice); err != nil {
			return closed, err
		}
		closed = append(closed, unit)
	}
	i.units = i.units[:0]
	return closed, nil
}
