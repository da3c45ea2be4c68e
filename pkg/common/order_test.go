package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairos/pkg/utility/fixed"
)

func testOrder(kind OrderKind) *Order {
	return &Order{
		Kind:       kind,
		State:      OrderStatePending,
		Quantity:   fixed.FromInt(100, 0),
		SubmitTime: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Symbol:     "EURUSD",
	}
}

func TestOrder_Execute(t *testing.T) {
	order := testOrder(OrderKindMarketEntryLong)
	fillTime := order.SubmitTime.AddDate(0, 0, 1)
	fillPrice := fixed.FromFloat64(1.1000)

	require.NoError(t, order.Execute(fillTime, fillPrice))

	assert.Equal(t, OrderStateExecuted, order.State)
	assert.Equal(t, fillTime, order.FillTime)
	assert.True(t, order.FillPrice.Eq(fillPrice))
}

func TestOrder_ExecuteOnSubmissionDate(t *testing.T) {
	order := testOrder(OrderKindMarketEntryLong)

	err := order.Execute(order.SubmitTime, fixed.FromFloat64(1.1000))

	assert.ErrorIs(t, err, ErrFillBeforeSubmission)
	assert.Equal(t, OrderStatePending, order.State)
}

func TestOrder_ExecuteBeforeSubmissionDate(t *testing.T) {
	order := testOrder(OrderKindMarketEntryLong)

	err := order.Execute(order.SubmitTime.AddDate(0, 0, -1), fixed.FromFloat64(1.1000))

	assert.ErrorIs(t, err, ErrFillBeforeSubmission)
}

func TestOrder_ResolutionIsTerminal(t *testing.T) {
	fillTime := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	executed := testOrder(OrderKindMarketEntryLong)
	require.NoError(t, executed.Execute(fillTime, fixed.FromFloat64(1.1000)))
	assert.ErrorIs(t, executed.Execute(fillTime, fixed.FromFloat64(1.2000)), ErrOrderResolved)
	assert.ErrorIs(t, executed.Cancel(), ErrOrderResolved)

	canceled := testOrder(OrderKindLimitExitLong)
	require.NoError(t, canceled.Cancel())
	assert.ErrorIs(t, canceled.Cancel(), ErrOrderResolved)
	assert.ErrorIs(t, canceled.Execute(fillTime, fixed.FromFloat64(1.1000)), ErrOrderResolved)
	assert.Equal(t, OrderStateCanceled, canceled.State)
}

func TestOrderKind_Direction(t *testing.T) {
	tests := []struct {
		kind    OrderKind
		isEntry bool
		isLong  bool
	}{
		{OrderKindMarketEntryLong, true, true},
		{OrderKindMarketEntryShort, true, false},
		{OrderKindMarketExitLong, false, true},
		{OrderKindMarketExitShort, false, false},
		{OrderKindLimitExitLong, false, true},
		{OrderKindLimitExitShort, false, false},
		{OrderKindStopExitLong, false, true},
		{OrderKindStopExitShort, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.isEntry, tt.kind.IsEntry())
			assert.Equal(t, !tt.isEntry, tt.kind.IsExit())
			assert.Equal(t, tt.isLong, tt.kind.IsLong())
		})
	}
}
