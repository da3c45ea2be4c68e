package broker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairos/pkg/common"
)

type stubBars struct {
	bars map[string]common.Bar
}

func (s stubBars) BarOn(symbol string, _ time.Time) (common.Bar, bool) {
	bar, ok := s.bars[symbol]
	return bar, ok
}

type stubPositions struct {
	flat map[string]bool
}

func (s stubPositions) IsFlat(symbol string) (bool, error) {
	return s.flat[symbol], nil
}

type resolutionLog struct {
	executed []*common.Order
	canceled []*common.Order
}

func testBook(log *resolutionLog) *Book {
	book := NewBook()
	book.OnExecuted = func(_ context.Context, order *common.Order) error {
		log.executed = append(log.executed, order)
		return nil
	}
	book.OnCanceled = func(_ context.Context, order *common.Order) error {
		log.canceled = append(log.canceled, order)
		return nil
	}
	return book
}

func TestBook_ProcessGroupPriority(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	// Submitted in reverse priority order, the pass must still visit
	// market exits, market entries, stop exits, limit exits.
	limitExit := pendingOrder(common.OrderKindLimitExitLong, 60)
	stopExit := pendingOrder(common.OrderKindStopExitLong, 49)
	marketEntry := pendingOrder(common.OrderKindMarketEntryLong, 0)
	marketExit := pendingOrder(common.OrderKindMarketExitLong, 0)

	require.NoError(t, book.Submit(limitExit))
	require.NoError(t, book.Submit(stopExit))
	require.NoError(t, book.Submit(marketEntry))
	require.NoError(t, book.Submit(marketExit))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(50, 61, 48, 50)}}
	positions := stubPositions{flat: map[string]bool{"ACME": false}}

	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))

	require.Len(t, log.executed, 4)
	assert.Same(t, marketExit, log.executed[0])
	assert.Same(t, marketEntry, log.executed[1])
	assert.Same(t, stopExit, log.executed[2])
	assert.Same(t, limitExit, log.executed[3])
	assert.Zero(t, book.PendingCount())
}

func TestBook_ExitCanceledWhenFlat(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	// The bar would trigger the stop, but the symbol is already flat,
	// so the order is canceled without consulting the bar.
	stopExit := pendingOrder(common.OrderKindStopExitLong, 49)
	require.NoError(t, book.Submit(stopExit))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(48, 49, 47, 48)}}
	positions := stubPositions{flat: map[string]bool{"ACME": true}}

	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))

	assert.Empty(t, log.executed)
	require.Len(t, log.canceled, 1)
	assert.Equal(t, common.OrderStateCanceled, stopExit.State)
}

func TestBook_NonTriggeringConditionalCanceled(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	limitExit := pendingOrder(common.OrderKindLimitExitLong, 60)
	require.NoError(t, book.Submit(limitExit))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(50, 52, 49, 50)}}
	positions := stubPositions{flat: map[string]bool{"ACME": false}}

	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))

	require.Len(t, log.canceled, 1)
	assert.Same(t, limitExit, log.canceled[0])
	assert.Zero(t, book.PendingCount())
}

func TestBook_OrderStaysPendingWithoutBar(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	entry := pendingOrder(common.OrderKindMarketEntryLong, 0)
	require.NoError(t, book.Submit(entry))

	bars := stubBars{bars: map[string]common.Bar{}}
	positions := stubPositions{flat: map[string]bool{"ACME": true}}

	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))

	assert.Empty(t, log.executed)
	assert.Empty(t, log.canceled)
	assert.Equal(t, common.OrderStatePending, entry.State)
	assert.Equal(t, 1, book.PendingCount())
}

func TestBook_OrderNotVisitedOnSubmissionDate(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	entry := pendingOrder(common.OrderKindMarketEntryLong, 0)
	require.NoError(t, book.Submit(entry))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(50, 52, 49, 51)}}
	positions := stubPositions{flat: map[string]bool{"ACME": true}}

	require.NoError(t, book.Process(context.Background(), submitDate, bars, positions))

	assert.Equal(t, common.OrderStatePending, entry.State)
	assert.Equal(t, 1, book.PendingCount())
}

type failingPositions struct {
	err error
}

func (s failingPositions) IsFlat(string) (bool, error) {
	return false, s.err
}

func TestBook_GroupKeptConsistentWhenPositionLookupFails(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	first := pendingOrder(common.OrderKindStopExitLong, 49)
	second := pendingOrder(common.OrderKindStopExitLong, 49)
	require.NoError(t, book.Submit(first))
	require.NoError(t, book.Submit(second))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(48, 49, 47, 48)}}
	lookupErr := errors.New("ledger unavailable")

	// The aborted pass must leave both orders in the book, the erroring
	// one included, so a later pass can still resolve them.
	err := book.Process(context.Background(), fillDate, bars, failingPositions{err: lookupErr})
	require.ErrorIs(t, err, lookupErr)

	assert.Equal(t, common.OrderStatePending, first.State)
	assert.Equal(t, common.OrderStatePending, second.State)
	assert.Equal(t, 2, book.PendingCount())

	positions := stubPositions{flat: map[string]bool{"ACME": false}}
	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))

	require.Len(t, log.executed, 2)
	assert.Zero(t, book.PendingCount())
}

func TestBook_GroupKeptConsistentWhenCallbackFails(t *testing.T) {
	log := &resolutionLog{}
	book := testBook(log)

	callbackErr := errors.New("journal write failed")
	inner := book.OnCanceled
	book.OnCanceled = func(ctx context.Context, order *common.Order) error {
		_ = inner(ctx, order)
		if len(log.canceled) == 1 {
			return callbackErr
		}
		return nil
	}

	first := pendingOrder(common.OrderKindLimitExitLong, 60)
	second := pendingOrder(common.OrderKindLimitExitLong, 60)
	require.NoError(t, book.Submit(first))
	require.NoError(t, book.Submit(second))

	bars := stubBars{bars: map[string]common.Bar{"ACME": ohlcBar(50, 52, 49, 50)}}
	positions := stubPositions{flat: map[string]bool{"ACME": false}}

	// The first order resolved before the callback failed, so only the
	// unvisited second order may remain pending.
	err := book.Process(context.Background(), fillDate, bars, positions)
	require.ErrorIs(t, err, callbackErr)

	assert.Equal(t, common.OrderStateCanceled, first.State)
	assert.Equal(t, common.OrderStatePending, second.State)
	assert.Equal(t, 1, book.PendingCount())

	require.NoError(t, book.Process(context.Background(), fillDate, bars, positions))
	require.Len(t, log.canceled, 2)
	assert.Same(t, second, log.canceled[1])
	assert.Zero(t, book.PendingCount())
}

func TestBook_SubmitResolvedOrder(t *testing.T) {
	book := NewBook()

	order := pendingOrder(common.OrderKindMarketEntryLong, 0)
	require.NoError(t, order.Cancel())

	assert.ErrorIs(t, book.Submit(order), common.ErrOrderResolved)
	assert.Zero(t, book.PendingCount())
}

func TestBook_PendingSnapshotIsDetached(t *testing.T) {
	book := NewBook()
	require.NoError(t, book.Submit(pendingOrder(common.OrderKindMarketEntryLong, 0)))

	snapshot := book.Pending()
	snapshot[0] = nil

	assert.NotNil(t, book.Pending()[0])
}
