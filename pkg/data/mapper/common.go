package mapper

import (
	"time"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// BinaryBar is the fixed-width on-disk record of one daily bar.
// Fields are ordered so the struct carries no padding.
type BinaryBar struct {
	TimeStamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

func (binaryBar BinaryBar) ToCommonBar(symbol string, bar *common.Bar) {
	bar.Symbol = symbol
	bar.Period = common.BarPeriodD1
	bar.TimeStamp = time.Unix(0, binaryBar.TimeStamp)
	bar.Open = fixed.FromFloat64(binaryBar.Open)
	bar.High = fixed.FromFloat64(binaryBar.High)
	bar.Low = fixed.FromFloat64(binaryBar.Low)
	bar.Close = fixed.FromFloat64(binaryBar.Close)
	bar.Volume = fixed.FromFloat64(binaryBar.Volume)
}
