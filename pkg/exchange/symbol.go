package exchange

import (
	"kairos/pkg/utility/fixed"
)

type SymbolClass string

const (
	Equity SymbolClass = "equity"
	Future SymbolClass = "future"
	Forex  SymbolClass = "forex"
)

type SymbolInfo struct {
	SymbolName string
	SymbolId   int64
	Class      SymbolClass
	Digits     int
	TickSize   fixed.Point
	LotSize    fixed.Point
}

// RoundToTick snaps a price to the symbol's minimum price increment.
// Used when a percentage-based stop or limit level is converted to an
// absolute price.
func (s SymbolInfo) RoundToTick(price fixed.Point) fixed.Point {
	if s.TickSize.IsZero() {
		return price.Rescale(s.Digits)
	}
	return price.Div(s.TickSize).Rescale(0).Mul(s.TickSize)
}
