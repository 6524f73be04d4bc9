package backtest

import (
	"math"
	"time"

	"fundscore/internal/domain"

	"github.com/montanaflynn/stats"
)

const tradingDaysPerYear = 252

// summarize derives the return/risk profile of a simulated value curve.
// The curve is daily-calendar with carried-forward values, so zero-move
// days (weekends, holidays) are dropped before any dispersion math -
// otherwise volatility would be understated by roughly sqrt(5/7).
func summarize(curve, benchmark []domain.ValuePoint, riskFreeRate float64) domain.PerformanceSummary {
	summary := domain.PerformanceSummary{}
	if len(curve) < 2 {
		return summary
	}

	first := curve[0].Value.InexactFloat64()
	last := curve[len(curve)-1].Value.InexactFloat64()
	if first <= 0 {
		return summary
	}

	summary.TotalReturn = (last/first - 1) * 100

	days := curve[len(curve)-1].Date.Sub(curve[0].Date).Hours() / 24
	if days >= 1 {
		summary.AnnualizedReturn = (math.Pow(last/first, 365/days) - 1) * 100
	}

	portReturns := tradingReturns(curve)
	if len(portReturns) >= 2 {
		if stdev, err := stats.StandardDeviationSample(portReturns); err == nil && stdev > 0 {
			vol := stdev * math.Sqrt(tradingDaysPerYear) * 100
			summary.Volatility = &vol

			mean, _ := stats.Mean(portReturns)
			sharpe := (mean*tradingDaysPerYear - riskFreeRate) / (stdev * math.Sqrt(tradingDaysPerYear))
			summary.Sharpe = &sharpe
		}
	}

	if dd := maxDrawdown(curve); dd != nil {
		summary.MaxDrawdown = dd
	}

	if len(benchmark) >= 2 {
		relative(&summary, curve, benchmark, riskFreeRate)
	}
	return summary
}

// maxDrawdown is the largest peak-to-trough decline of the curve, as a
// positive percentage. Nil for a curve that never declines.
func maxDrawdown(curve []domain.ValuePoint) *float64 {
	peak := 0.0
	worst := 0.0
	for _, p := range curve {
		v := p.Value.InexactFloat64()
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak * 100; dd > worst {
				worst = dd
			}
		}
	}
	if worst == 0 {
		return nil
	}
	return &worst
}

// relative fills the benchmark-dependent fields from date-aligned daily
// returns of portfolio and benchmark.
func relative(summary *domain.PerformanceSummary, curve, benchmark []domain.ValuePoint, riskFreeRate float64) {
	benchByDate := map[string]float64{}
	for _, p := range benchmark {
		benchByDate[p.Date.Format(time.DateOnly)] = p.Value.InexactFloat64()
	}

	var portRets, benchRets []float64
	var prevPort, prevBench float64
	havePrev := false
	for _, p := range curve {
		bench, ok := benchByDate[p.Date.Format(time.DateOnly)]
		if !ok || bench <= 0 {
			continue
		}
		port := p.Value.InexactFloat64()
		if havePrev {
			pr := port/prevPort - 1
			br := bench/prevBench - 1
			// skip carried-forward flat benchmark days
			if br != 0 || pr != 0 {
				portRets = append(portRets, pr)
				benchRets = append(benchRets, br)
			}
		}
		prevPort, prevBench = port, bench
		havePrev = true
	}

	if len(portRets) < 2 {
		return
	}

	benchVar, err := stats.SampleVariance(benchRets)
	if err != nil || benchVar == 0 {
		return
	}
	cov, err := stats.Covariance(benchRets, portRets)
	if err != nil {
		return
	}
	beta := cov / benchVar
	summary.Beta = &beta

	benchFirst := benchmark[0].Value.InexactFloat64()
	benchLast := benchmark[len(benchmark)-1].Value.InexactFloat64()
	days := curve[len(curve)-1].Date.Sub(curve[0].Date).Hours() / 24
	if benchFirst > 0 && days >= 1 {
		benchAnnual := (math.Pow(benchLast/benchFirst, 365/days) - 1) * 100
		rf := riskFreeRate * 100
		alpha := summary.AnnualizedReturn - (rf + beta*(benchAnnual-rf))
		summary.Alpha = &alpha
	}

	diffs := make([]float64, len(portRets))
	for i := range portRets {
		diffs[i] = portRets[i] - benchRets[i]
	}
	if stdev, err := stats.StandardDeviationSample(diffs); err == nil {
		te := stdev * math.Sqrt(tradingDaysPerYear) * 100
		summary.TrackingError = &te
	}

	if up := captureRatio(portRets, benchRets, true); up != nil {
		summary.UpCapture = up
	}
	if down := captureRatio(portRets, benchRets, false); down != nil {
		summary.DownCapture = down
	}
}

// captureRatio compares average portfolio return to average benchmark
// return on days the benchmark moved in the given direction, as a
// percentage. 100 means the portfolio moved one-for-one.
func captureRatio(portRets, benchRets []float64, up bool) *float64 {
	var portSum, benchSum float64
	n := 0
	for i, br := range benchRets {
		if (up && br > 0) || (!up && br < 0) {
			portSum += portRets[i]
			benchSum += br
			n++
		}
	}
	if n == 0 || benchSum == 0 {
		return nil
	}
	ratio := portSum / benchSum * 100
	return &ratio
}

// tradingReturns turns a carried-forward daily curve into the return
// stream of days the portfolio actually moved.
func tradingReturns(curve []domain.ValuePoint) []float64 {
	out := []float64{}
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Value.InexactFloat64()
		cur := curve[i].Value.InexactFloat64()
		if prev <= 0 {
			continue
		}
		if r := cur/prev - 1; r != 0 {
			out = append(out, r)
		}
	}
	return out
}
