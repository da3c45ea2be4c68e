package broker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kairos/pkg/bus"
	"kairos/pkg/common"
	"kairos/pkg/tools/store"
	"kairos/pkg/utility"
	"kairos/pkg/utility/fixed"
)

const brokerComponentName = "broker"

// EntryOption attaches optional risk levels to an entry order; they are
// carried onto the resulting position unit, not acted on by the
// engine itself.
type EntryOption func(*common.Order)

func WithStopLoss(price fixed.Point) EntryOption {
	return func(o *common.Order) {
		o.StopLoss = price
	}
}

func WithTakeProfit(price fixed.Point) EntryOption {
	return func(o *common.Order) {
		o.TakeProfit = price
	}
}

// Broker is the façade strategies talk to. It owns the order book and
// the position ledger, translates enter/exit intents into orders,
// reacts to order resolutions, and publishes every closed unit on the
// router.
type Broker struct {
	router  *bus.Router
	book    *Book
	ledger  *Ledger
	bars    BarSource
	symbols store.SymbolStore

	transactions      map[common.PositionId]*Transaction
	positionIdCounter common.PositionId

	totalTrades  int
	closedTrades int

	simulationTime time.Time
}

func NewBroker(router *bus.Router, bars BarSource, symbols store.SymbolStore) *Broker {
	b := &Broker{
		router:       router,
		book:         NewBook(),
		bars:         bars,
		symbols:      symbols,
		transactions: make(map[common.PositionId]*Transaction),
	}

	names := make([]string, 0, len(symbols.Symbols()))
	for _, info := range symbols.Symbols() {
		names = append(names, strings.ToUpper(info.SymbolName))
	}
	b.ledger = NewLedger(names...)

	b.book.OnExecuted = b.onOrderExecuted
	b.book.OnCanceled = b.onOrderCanceled
	b.ledger.OnClosed = b.onPositionClosed
	return b
}

// ProcessPendingOrders is the single driving call per simulated date.
// It appends the day's bar to every open unit first, then resolves
// pending orders in the book's fixed priority.
func (b *Broker) ProcessPendingOrders(ctx context.Context, date time.Time) error {
	b.simulationTime = date

	for _, info := range b.symbols.Symbols() {
		symbol := strings.ToUpper(info.SymbolName)
		bar, ok := b.bars.BarOn(symbol, date)
		if !ok {
			continue
		}
		if err := b.ledger.AppendBar(symbol, bar); err != nil {
			return err
		}
	}

	return b.book.Process(ctx, date, b.bars, b.ledger)
}

func (b *Broker) EnterLongOnOpen(ctx context.Context, symbol string, quantity fixed.Point, options ...EntryOption) error {
	return b.enterOnOpen(ctx, symbol, common.OrderKindMarketEntryLong, quantity, options...)
}

func (b *Broker) EnterShortOnOpen(ctx context.Context, symbol string, quantity fixed.Point, options ...EntryOption) error {
	return b.enterOnOpen(ctx, symbol, common.OrderKindMarketEntryShort, quantity, options...)
}

func (b *Broker) ExitLongAllUnitsOnOpen(ctx context.Context, symbol string) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindMarketExitLong, fixed.Zero)
}

func (b *Broker) ExitShortAllUnitsOnOpen(ctx context.Context, symbol string) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindMarketExitShort, fixed.Zero)
}

func (b *Broker) ExitLongAllUnitsAtLimit(ctx context.Context, symbol string, limitPrice fixed.Point) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindLimitExitLong, limitPrice)
}

func (b *Broker) ExitShortAllUnitsAtLimit(ctx context.Context, symbol string, limitPrice fixed.Point) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindLimitExitShort, limitPrice)
}

func (b *Broker) ExitLongAllUnitsAtStop(ctx context.Context, symbol string, stopPrice fixed.Point) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindStopExitLong, stopPrice)
}

func (b *Broker) ExitShortAllUnitsAtStop(ctx context.Context, symbol string, stopPrice fixed.Point) error {
	return b.exitAllUnits(ctx, symbol, common.OrderKindStopExitShort, stopPrice)
}

// Percentage variants take a base price and an offset in percent, and
// convert to an absolute tick-rounded level in the direction the exit
// kind implies: stops on the losing side, limits on the winning side.

func (b *Broker) ExitLongAllUnitsAtLimitPct(ctx context.Context, symbol string, basePrice, offsetPct fixed.Point) error {
	price, err := b.offsetPrice(symbol, basePrice, offsetPct)
	if err != nil {
		return err
	}
	return b.ExitLongAllUnitsAtLimit(ctx, symbol, price)
}

func (b *Broker) ExitShortAllUnitsAtLimitPct(ctx context.Context, symbol string, basePrice, offsetPct fixed.Point) error {
	price, err := b.offsetPrice(symbol, basePrice, offsetPct.Neg())
	if err != nil {
		return err
	}
	return b.ExitShortAllUnitsAtLimit(ctx, symbol, price)
}

func (b *Broker) ExitLongAllUnitsAtStopPct(ctx context.Context, symbol string, basePrice, offsetPct fixed.Point) error {
	price, err := b.offsetPrice(symbol, basePrice, offsetPct.Neg())
	if err != nil {
		return err
	}
	return b.ExitLongAllUnitsAtStop(ctx, symbol, price)
}

func (b *Broker) ExitShortAllUnitsAtStopPct(ctx context.Context, symbol string, basePrice, offsetPct fixed.Point) error {
	price, err := b.offsetPrice(symbol, basePrice, offsetPct)
	if err != nil {
		return err
	}
	return b.ExitShortAllUnitsAtStop(ctx, symbol, price)
}

// CloseAllOpenPositions liquidates whatever is still open at the last
// observed price, typically once the simulated date range is
// exhausted.
func (b *Broker) CloseAllOpenPositions(ctx context.Context) error {
	for _, info := range b.symbols.Symbols() {
		symbol := strings.ToUpper(info.SymbolName)

		instrument, err := b.ledger.Instrument(symbol)
		if err != nil {
			return err
		}
		if instrument.IsFlat() {
			continue
		}

		closePrice := b.lastKnownPrice(symbol, instrument)
		if err := b.ledger.CloseAll(ctx, symbol, b.simulationTime, closePrice); err != nil {
			return err
		}
	}
	return nil
}

func (b *Broker) TotalTrades() int {
	return b.totalTrades
}

func (b *Broker) OpenTrades() int {
	return b.totalTrades - b.closedTrades
}

func (b *Broker) ClosedTrades() int {
	return b.closedTrades
}

// PendingOrders returns a read-only snapshot of not-yet-resolved
// orders, oldest first.
func (b *Broker) PendingOrders() []*common.Order {
	return b.book.Pending()
}

func (b *Broker) enterOnOpen(ctx context.Context, symbol string, kind common.OrderKind, quantity fixed.Point, options ...EntryOption) error {
	if !quantity.Gt(fixed.Zero) {
		return fmt.Errorf("unable to enter %s: %w", symbol, common.ErrOrderQuantityNotValid)
	}
	if _, err := b.symbols.Get(symbol); err != nil {
		return err
	}

	order := b.newOrder(symbol, kind, quantity)
	for _, option := range options {
		option(order)
	}

	return b.submit(ctx, order)
}

func (b *Broker) exitAllUnits(ctx context.Context, symbol string, kind common.OrderKind, price fixed.Point) error {
	if _, err := b.symbols.Get(symbol); err != nil {
		return err
	}

	name := strings.ToUpper(symbol)
	if kind.IsLong() {
		long, err := b.ledger.IsLong(name)
		if err != nil {
			return err
		}
		if !long {
			return fmt.Errorf("unable to exit long %s: %w", name, ErrNoMatchingPosition)
		}
	} else {
		short, err := b.ledger.IsShort(name)
		if err != nil {
			return err
		}
		if !short {
			return fmt.Errorf("unable to exit short %s: %w", name, ErrNoMatchingPosition)
		}
	}

	volume, err := b.ledger.Volume(name)
	if err != nil {
		return err
	}

	order := b.newOrder(symbol, kind, volume)
	order.Price = price

	return b.submit(ctx, order)
}

func (b *Broker) newOrder(symbol string, kind common.OrderKind, quantity fixed.Point) *common.Order {
	return &common.Order{
		Kind:        kind,
		State:       common.OrderStatePending,
		Quantity:    quantity,
		SubmitTime:  b.simulationTime,
		Source:      brokerComponentName,
		Symbol:      strings.ToUpper(symbol),
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   b.simulationTime,
	}
}

func (b *Broker) submit(ctx context.Context, order *common.Order) error {
	if err := b.book.Submit(order); err != nil {
		return err
	}
	if err := b.router.Post(ctx, bus.OrderEvent, *order); err != nil {
		slog.Warn("unable to post order event", "error", err)
	}
	return nil
}

func (b *Broker) offsetPrice(symbol string, basePrice, offsetPct fixed.Point) (fixed.Point, error) {
	info, err := b.symbols.Get(symbol)
	if err != nil {
		return fixed.Zero, err
	}
	price := basePrice.Mul(fixed.One.Add(offsetPct.Div(fixed.Hundred)))
	return info.RoundToTick(price), nil
}

func (b *Broker) lastKnownPrice(symbol string, instrument *Instrument) fixed.Point {
	if bar, ok := b.bars.BarOn(symbol, b.simulationTime); ok {
		return bar.Close
	}

	units := instrument.Units()
	if history := units[0].Bars; len(history) > 0 {
		return history[len(history)-1].Close
	}
	return units[0].OpenPrice
}

func (b *Broker) onOrderExecuted(ctx context.Context, order *common.Order) error {
	if order.Kind.IsEntry() {
		if err := b.openUnit(ctx, order); err != nil {
			return err
		}
	} else {
		if err := b.closeUnits(ctx, order); err != nil {
			return err
		}
	}

	if err := b.router.Post(ctx, bus.OrderExecutedEvent, *order); err != nil {
		slog.Warn("unable to post order executed event", "error", err)
	}
	return nil
}

func (b *Broker) onOrderCanceled(ctx context.Context, order *common.Order) error {
	if err := b.router.Post(ctx, bus.OrderCanceledEvent, *order); err != nil {
		slog.Warn("unable to post order canceled event", "error", err)
	}
	return nil
}

func (b *Broker) openUnit(ctx context.Context, order *common.Order) error {
	side := common.PositionSideLong
	if !order.Kind.IsLong() {
		side = common.PositionSideShort
	}

	b.positionIdCounter++
	unit := &common.Position{
		Id:            b.positionIdCounter,
		Status:        common.PositionStatusOpen,
		Side:          side,
		Quantity:      order.Quantity,
		OpenTime:      order.FillTime,
		OpenPrice:     order.FillPrice,
		StopLoss:      order.StopLoss,
		TakeProfit:    order.TakeProfit,
		Source:        brokerComponentName,
		Symbol:        order.Symbol,
		ExecutionID:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		OrderTraceIDs: []utility.TraceID{order.TraceID},
		TimeStamp:     order.FillTime,
	}

	if err := b.ledger.AddUnit(unit); err != nil {
		return err
	}

	b.transactions[unit.Id] = &Transaction{Entry: order, PositionId: unit.Id}
	b.totalTrades++

	if err := b.router.Post(ctx, bus.PositionOpenedEvent, *unit); err != nil {
		slog.Warn("unable to post position opened event", "error", err)
	}
	return nil
}

func (b *Broker) closeUnits(ctx context.Context, order *common.Order) error {
	instrument, err := b.ledger.Instrument(order.Symbol)
	if err != nil {
		return err
	}

	for _, unit := range instrument.Units() {
		transaction, ok := b.transactions[unit.Id]
		if !ok {
			return fmt.Errorf("%w: unit %d of %s", ErrTransactionMissing, unit.Id, order.Symbol)
		}
		transaction.Exit = order
		unit.OrderTraceIDs = append(unit.OrderTraceIDs, order.TraceID)
	}

	return b.ledger.CloseAll(ctx, order.Symbol, order.FillTime, order.FillPrice)
}

func (b *Broker) onPositionClosed(ctx context.Context, unit *common.Position) error {
	if _, ok := b.transactions[unit.Id]; !ok {
		return fmt.Errorf("%w: unit %d of %s", ErrTransactionMissing, unit.Id, unit.Symbol)
	}
	delete(b.transactions, unit.Id)
	b.closedTrades++

	if err := b.router.Post(ctx, bus.PositionClosedEvent, *unit); err != nil {
		slog.Warn("unable to post position closed event", "error", err)
	}
	return nil
}
