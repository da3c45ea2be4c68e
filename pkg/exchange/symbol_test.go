package exchange

import (
	"testing"

	"kairos/pkg/utility/fixed"
)

func TestSymbolInfo_RoundToTick(t *testing.T) {
	tests := []struct {
		name  string
		info  SymbolInfo
		price fixed.Point
		want  fixed.Point
	}{
		{
			name:  "rounds to digits when tick size is unset",
			info:  SymbolInfo{SymbolName: "EURUSD", Digits: 4},
			price: fixed.FromFloat64(1.23456),
			want:  fixed.FromFloat64(1.2346),
		},
		{
			name:  "snaps to quarter tick",
			info:  SymbolInfo{SymbolName: "ES", Digits: 2, TickSize: fixed.FromFloat64(0.25)},
			price: fixed.FromFloat64(4512.30),
			want:  fixed.FromFloat64(4512.25),
		},
		{
			name:  "exact tick is unchanged",
			info:  SymbolInfo{SymbolName: "ES", Digits: 2, TickSize: fixed.FromFloat64(0.25)},
			price: fixed.FromFloat64(4512.75),
			want:  fixed.FromFloat64(4512.75),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.RoundToTick(tt.price)
			if !got.Eq(tt.want) {
				t.Errorf("RoundToTick() = %v, want %v", got, tt.want)
			}
		})
	}
}
