package market

import (
	"sort"
	"strings"
	"time"

	"kairos/pkg/common"
)

// History is an in-memory price-bar source: one bar per symbol per
// trading day, queryable by exact date. Missing entries mean
// non-trading days for the instrument.
type History struct {
	bars map[string]map[int64]common.Bar
	days map[int64]time.Time
}

func NewHistory() *History {
	return &History{
		bars: make(map[string]map[int64]common.Bar),
		days: make(map[int64]time.Time),
	}
}

func (h *History) Add(bar common.Bar) {
	symbol := strings.ToUpper(bar.Symbol)
	day := dateKey(bar.TimeStamp)

	symbolBars, ok := h.bars[symbol]
	if !ok {
		symbolBars = make(map[int64]common.Bar)
		h.bars[symbol] = symbolBars
	}
	symbolBars[day] = bar
	h.days[day] = bar.TimeStamp.UTC().Truncate(common.BarPeriodD1)
}

func (h *History) BarOn(symbol string, date time.Time) (common.Bar, bool) {
	symbolBars, ok := h.bars[strings.ToUpper(symbol)]
	if !ok {
		return common.Bar{}, false
	}
	bar, ok := symbolBars[dateKey(date)]
	return bar, ok
}

// BarsOn returns every symbol's bar for one date, ordered by symbol so
// iteration stays deterministic.
func (h *History) BarsOn(date time.Time) []common.Bar {
	symbols := make([]string, 0, len(h.bars))
	for symbol := range h.bars {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	day := dateKey(date)
	bars := make([]common.Bar, 0, len(symbols))
	for _, symbol := range symbols {
		if bar, ok := h.bars[symbol][day]; ok {
			bars = append(bars, bar)
		}
	}
	return bars
}

// TradingDays returns the dates inside [from, to] on which at least
// one symbol traded, in ascending order.
func (h *History) TradingDays(from, to time.Time) []time.Time {
	fromKey := dateKey(from)
	toKey := dateKey(to)

	days := make([]time.Time, 0, len(h.days))
	for key, day := range h.days {
		if key >= fromKey && key <= toKey {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func dateKey(t time.Time) int64 {
	return t.UTC().Truncate(common.BarPeriodD1).Unix()
}
