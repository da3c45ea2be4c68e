package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairos/pkg/exchange"
)

func TestSymbolStore_Get(t *testing.T) {
	symbols := CreateSymbolStore(
		exchange.SymbolInfo{SymbolName: "EURUSD", SymbolId: 1, Class: exchange.Forex},
		exchange.SymbolInfo{SymbolName: "ES", SymbolId: 2, Class: exchange.Future},
	)

	info, err := symbols.Get("eurusd")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.SymbolId)

	_, err = symbols.Get("GBPUSD")
	assert.ErrorIs(t, err, ErrSymbolNotPresent)
}

func TestSymbolStore_Contains(t *testing.T) {
	symbols := CreateSymbolStore(exchange.SymbolInfo{SymbolName: "ES"})

	assert.True(t, symbols.Contains("ES"))
	assert.True(t, symbols.Contains("es"))
	assert.False(t, symbols.Contains("NQ"))
}

func TestSymbolStore_MustGetPanics(t *testing.T) {
	symbols := CreateSymbolStore()

	assert.Panics(t, func() {
		symbols.MustGet("ES")
	})
}
