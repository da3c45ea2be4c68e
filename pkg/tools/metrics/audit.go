package metrics

import (
	"context"
	"time"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// Audit collects closed positions as the backtest publishes them and
// turns them into a trade-level performance report. Profits are
// measured in price points, so cross-instrument reports assume
// comparable point values.
type Audit struct {
	closedPositions []common.Position
}

func NewAudit() *Audit {
	return &Audit{}
}

// OnPositionClosed is meant to be wired as the router's position
// closed handler.
func (a *Audit) OnPositionClosed(_ context.Context, position common.Position) {
	a.AddClosedPosition(position)
}

func (a *Audit) AddClosedPosition(position common.Position) {
	a.closedPositions = append(a.closedPositions, position)
}

func (a *Audit) ClosedPositions() []common.Position {
	return a.closedPositions
}

func (a *Audit) GenerateReport() Report {

	report := Report{}

	var (
		totalProfit   fixed.Point
		totalLoss     fixed.Point
		totalBarsHeld int
		totalDuration time.Duration
		riskMultiples []fixed.Point
	)

	for _, position := range a.closedPositions {
		report.TotalTrades++

		if report.StartDate.IsZero() || position.OpenTime.Before(report.StartDate) {
			report.StartDate = position.OpenTime
		}
		if position.CloseTime.After(report.EndDate) {
			report.EndDate = position.CloseTime
		}
		if position.CloseTime.After(position.OpenTime) {
			totalDuration += position.CloseTime.Sub(position.OpenTime)
		}
		totalBarsHeld += len(position.Bars)

		// Break-even trades count toward neither tally, so they do not
		// inflate the loss count or dilute the average loss.
		profit := position.PointProfit()
		switch {
		case profit.Gt(fixed.Zero):
			totalProfit = totalProfit.Add(profit)
			report.WinningTrades++
		case profit.Lt(fixed.Zero):
			totalLoss = totalLoss.Add(profit.Neg())
			report.LosingTrades++
		}

		if r, ok := riskMultiple(position); ok {
			riskMultiples = append(riskMultiples, r)
		}
	}

	report.TotalProfit = totalProfit.Sub(totalLoss)

	if report.WinningTrades > 0 {
		report.AverageWin = totalProfit.DivInt64(int64(report.WinningTrades))
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = totalLoss.DivInt64(int64(report.LosingTrades))
	}
	if totalLoss.Gt(fixed.Zero) {
		report.ProfitFactor = totalProfit.Div(totalLoss)
	}
	if report.AverageLoss.Gt(fixed.Zero) {
		report.PayoffRatio = report.AverageWin.Div(report.AverageLoss)
	}
	if report.TotalTrades > 0 {
		report.Expectancy = report.TotalProfit.DivInt64(int64(report.TotalTrades))
		report.WinRate = fixed.FromInt64(int64(report.WinningTrades), 0).
			DivInt64(int64(report.TotalTrades)).MulInt64(100).Rescale(2)
		report.AverageBarsHeld = fixed.FromInt64(int64(totalBarsHeld), 0).
			DivInt64(int64(report.TotalTrades)).Rescale(2)
		report.AverageTradeDuration = totalDuration / time.Duration(report.TotalTrades)
	}
	if len(riskMultiples) > 0 {
		report.RExpectancy = fixed.Mean(riskMultiples).Rescale(3)
	}

	report.MaxDrawdown = a.maxDrawdown()

	return report
}

// maxDrawdown walks the cumulative point profit curve in close order
// and reports the deepest peak-to-trough decline.
func (a *Audit) maxDrawdown() fixed.Point {
	positions := make([]common.Position, len(a.closedPositions))
	copy(positions, a.closedPositions)

	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j].CloseTime.Before(positions[j-1].CloseTime); j-- {
			positions[j], positions[j-1] = positions[j-1], positions[j]
		}
	}

	var (
		equity   fixed.Point
		peak     fixed.Point
		drawdown fixed.Point
	)
	for _, position := range positions {
		equity = equity.Add(position.PointProfit())
		if equity.Gt(peak) {
			peak = equity
		}
		if dd := peak.Sub(equity); dd.Gt(drawdown) {
			drawdown = dd
		}
	}
	return drawdown
}

// riskMultiple expresses a trade's point profit in units of its
// initial stop distance. Trades without a stop carry no risk unit.
func riskMultiple(position common.Position) (fixed.Point, bool) {
	if position.StopLoss.IsZero() {
		return fixed.Zero, false
	}
	risk := position.OpenPrice.Sub(position.StopLoss).Abs().Mul(position.Quantity)
	if risk.IsZero() {
		return fixed.Zero, false
	}
	return position.PointProfit().Div(risk), true
}
