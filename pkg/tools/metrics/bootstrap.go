package metrics

import (
	"log/slog"
	"math/rand"
	"sort"

	"kairos/pkg/common"
	"kairos/pkg/utility/fixed"
)

// BootstrapResult holds the resampled distribution quantiles of a
// trade statistic.
type BootstrapResult struct {
	P05 fixed.Point
	P50 fixed.Point
	P95 fixed.Point
}

// Bootstrap estimates how fragile the audited results are by
// resampling the closed trades with replacement and recomputing
// expectancy and profit factor on each resample.
type Bootstrap struct {
	rng        *rand.Rand
	iterations int
}

func NewBootstrap(seed int64, iterations int) *Bootstrap {
	return &Bootstrap{
		rng:        rand.New(rand.NewSource(seed)),
		iterations: iterations,
	}
}

func (b *Bootstrap) Run(positions []common.Position) (expectancy, profitFactor BootstrapResult) {
	if len(positions) == 0 || b.iterations == 0 {
		return
	}

	profits := make([]fixed.Point, len(positions))
	for i, position := range positions {
		profits[i] = position.PointProfit()
	}

	expectancies := make([]fixed.Point, 0, b.iterations)
	profitFactors := make([]fixed.Point, 0, b.iterations)

	for i := 0; i < b.iterations; i++ {
		var total, wins, losses fixed.Point
		for j := 0; j < len(profits); j++ {
			p := profits[b.rng.Intn(len(profits))]
			total = total.Add(p)
			if p.Gt(fixed.Zero) {
				wins = wins.Add(p)
			} else {
				losses = losses.Add(p.Neg())
			}
		}
		expectancies = append(expectancies, total.DivInt64(int64(len(profits))))
		if losses.Gt(fixed.Zero) {
			profitFactors = append(profitFactors, wins.Div(losses))
		}
	}

	return quantiles(expectancies), quantiles(profitFactors)
}

func quantiles(samples []fixed.Point) BootstrapResult {
	if len(samples) == 0 {
		return BootstrapResult{}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Lt(samples[j]) })
	return BootstrapResult{
		P05: samples[len(samples)*5/100],
		P50: samples[len(samples)/2],
		P95: samples[len(samples)*95/100],
	}
}

func (r BootstrapResult) Print(name string) {
	slog.Info("bootstrap estimate",
		"statistic", name,
		"p05", r.P05.String(),
		"p50", r.P50.String(),
		"p95", r.P95.String())
}
