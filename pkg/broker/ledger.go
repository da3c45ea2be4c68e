package broker

import (
	"context"
	"fmt"
	"time"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// ClosedHandler is invoked exactly once for every unit the ledger
// closes, with the fully populated unit.
type ClosedHandler func(context.Context, *common.Position) error

// Ledger owns one Instrument per registered symbol. Every traded
// symbol must be registered before the first order for it is
// submitted; lookups of unregistered symbols are errors.
type Ledger struct {
	instruments map[string]*Instrument

	OnClosed ClosedHandler
}

func NewLedger(symbols ...string) *Ledger {
	l := &Ledger{
		instruments: make(map[string]*Instrument, len(symbols)),
	}
	for _, symbol := range symbols {
		l.Register(symbol)
	}
	return l
}

func (l *Ledger) Register(symbol string) {
	if _, ok := l.instruments[symbol]; !ok {
		l.instruments[symbol] = NewInstrument(symbol)
	}
}

func (l *Ledger) Instrument(symbol string) (*Instrument, error) {
	instrument, ok := l.instruments[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotRegistered, symbol)
	}
	return instrument, nil
}

func (l *Ledger) IsFlat(symbol string) (bool, error) {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return false, err
	}
	return instrument.IsFlat(), nil
}

func (l *Ledger) IsLong(symbol string) (bool, error) {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return false, err
	}
	return instrument.IsLong(), nil
}

func (l *Ledger) IsShort(symbol string) (bool, error) {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return false, err
	}
	return instrument.IsShort(), nil
}

func (l *Ledger) Volume(symbol string) (fixed.Point, error) {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return fixed.Zero, err
	}
	return instrument.Volume(), nil
}

func (l *Ledger) AddUnit(unit *common.Position) error {
	instrument, err := l.Instrument(unit.Symbol)
	if err != nil {
		return err
	}
	return instrument.AddUnit(unit)
}

func (l *Ledger) AppendBar(symbol string, bar common.Bar) error {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return err
	}
	return instrument.AppendBar(bar)
}

func (l *Ledger) CloseUnit(ctx context.Context, symbol string, unitNumber int, closeTime time.Time, closePrice fixed.Point) error {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return err
	}
	unit, err := instrument.CloseUnit(unitNumber, closeTime, closePrice)
	if err != nil {
		return err
	}
	return l.notifyClosed(ctx, unit)
}

func (l *Ledger) CloseAll(ctx context.Context, symbol string, closeTime time.Time, closePrice fixed.Point) error {
	instrument, err := l.Instrument(symbol)
	if err != nil {
		return err
	}
	closed, err := instrument.CloseAll(closeTime, closePrice)
	if err != nil {
		return err
	}
	for _, unit := range closed {
		if err := l.notifyClosed(ctx, unit); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) notifyClosed(ctx context.Context, unit *common.Position) error {
	if l.OnClosed == nil {
		return nil
	}
	return l.OnClosed(ctx, unit)
}
