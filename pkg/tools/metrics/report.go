package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"kairos/pkg/utility/fixed"
)

type Report struct {
	StartDate            time.Time
	EndDate              time.Time
	TotalProfit          fixed.Point
	MaxDrawdown          fixed.Point
	TotalTrades          int
	WinningTrades        int
	LosingTrades         int
	WinRate              fixed.Point
	Expectancy           fixed.Point
	RExpectancy          fixed.Point
	ProfitFactor         fixed.Point
	AverageWin           fixed.Point
	AverageLoss          fixed.Point
	PayoffRatio          fixed.Point
	AverageBarsHeld      fixed.Point
	AverageTradeDuration time.Duration
}

func (report Report) Print() {
	slog.Info("performance report",
		"start_date", report.StartDate.Format(time.DateOnly),
		"end_date", report.EndDate.Format(time.DateOnly),
		"total_profit_points", report.TotalProfit.String(),
		"max_drawdown_points", report.MaxDrawdown.String())

	slog.Info("trade statistics",
		"total_trades", report.TotalTrades,
		"winning_trades", report.WinningTrades,
		"losing_trades", report.LosingTrades,
		"win_rate", fmt.Sprintf("%s%%", report.WinRate.String()),
		"expectancy", report.Expectancy.String(),
		"r_expectancy", report.RExpectancy.String(),
		"profit_factor", report.ProfitFactor.String(),
		"average_win", report.AverageWin.String(),
		"average_loss", report.AverageLoss.String(),
		"payoff_ratio", report.PayoffRatio.String(),
		"average_bars_held", report.AverageBarsHeld.String(),
		"average_trade_duration", report.AverageTradeDuration.String())
}
