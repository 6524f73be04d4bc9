package calculator

import (
	"math"
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

const tradingDaysPerYear = 252

// Service converts a fund's ordered NAV series into a point-in-time
// MetricSet. It is stateless; a single instance may be shared across
// concurrent fund computations.
type Service struct {
	// RiskFreeRate is annual, as a fraction (0.065 == 6.5%).
	RiskFreeRate float64

	// MinNavPoints is the floor below which every metric is absent.
	MinNavPoints int

	// MinDailyObs is the minimum number of daily return observations
	// for volatility, Sharpe, Sortino and beta.
	MinDailyObs int

	// OutlierBound drops daily returns with |r| at or above it. These
	// are data quality artifacts (splits, bad scrapes) - excluded, not
	// corrected.
	OutlierBound float64

	// RiskWindowYears is the trailing window for volatility, Sharpe,
	// Sortino, drawdown and beta.
	RiskWindowYears int
}

func NewService() *Service {
	return &Service{
		RiskFreeRate:    0.065,
		MinNavPoints:    30,
		MinDailyObs:     150,
		OutlierBound:    0.2,
		RiskWindowYears: 3,
	}
}

// Compute produces a MetricSet for the fund as of the given date. Any
// metric that cannot be computed from the available history is nil -
// never a placeholder. A series shorter than MinNavPoints yields a
// MetricSet with every field absent.
func (s *Service) Compute(series domain.NavSeries, benchmark []domain.BenchmarkPoint, asOf time.Time) domain.MetricSet {
	out := domain.NewMetricSet(fundIDOf(series), asOf)
	visible := series.Until(asOf)
	if len(visible) < s.MinNavPoints {
		return out
	}

	latest := visible[len(visible)-1]

	for _, spec := range periodSpecs {
		target := asOf.AddDate(0, 0, -spec.lookbackDays)
		out.PeriodReturns[spec.period] = periodReturn(visible, latest, target, spec.toleranceDays, spec.annualize)
	}
	out.PeriodReturns[domain.PeriodYTD] = periodReturn(visible, latest, ytdTarget(asOf), ytdToleranceDays, false)

	windowStart := asOf.AddDate(-s.RiskWindowYears, 0, 0)
	window := riskWindow(visible, windowStart)
	returns := s.cleanDailyReturns(window)

	out.MaxDrawdown = maxDrawdown(window)
	if len(returns) >= s.MinDailyObs {
		out.Volatility = volatility(returns)
		out.Sharpe = s.sharpe(returns)
		out.Sortino = s.sortino(returns)
		out.Beta = s.beta(window, benchmark, windowStart, asOf)
	}

	return out
}

// periodReturn computes the return from the observation closest to
// target (within tolerance) up to the latest observation, as a percent.
// Periods longer than a year are annualized over the actual day span.
func periodReturn(series domain.NavSeries, latest domain.NavPoint, target time.Time, toleranceDays int, annualize bool) *float64 {
	then := series.ClosestWithin(target, toleranceDays)
	if then == nil || then.Nav.IsZero() || !then.Date.Before(latest.Date) {
		return nil
	}

	growth := latest.Nav.Div(then.Nav).InexactFloat64()
	if growth <= 0 {
		return nil
	}

	var ret float64
	if annualize {
		days := latest.Date.Sub(then.Date).Hours() / 24
		ret = (math.Pow(growth, 365/days) - 1) * 100
	} else {
		ret = (growth - 1) * 100
	}
	return &ret
}

func riskWindow(series domain.NavSeries, start time.Time) domain.NavSeries {
	for i, p := range series {
		if !p.Date.Before(start) {
			return series[i:]
		}
	}
	return nil
}

// cleanDailyReturns computes simple daily returns over the window,
// excluding data-quality outliers.
func (s *Service) cleanDailyReturns(window domain.NavSeries) []float64 {
	raw := window.DailyReturns()
	out := make([]float64, 0, len(raw))
	for _, r := range raw {
		if math.Abs(r) >= s.OutlierBound {
			continue
		}
		out = append(out, r)
	}
	return out
}

// volatility annualizes the sample stdev of daily returns, in percent.
func volatility(returns []float64) *float64 {
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil || stdev == 0 {
		return nil
	}
	v := stdev * math.Sqrt(tradingDaysPerYear) * 100
	return &v
}

func (s *Service) sharpe(returns []float64) *float64 {
	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil || stdev == 0 {
		return nil
	}
	mean, err := stats.Mean(returns)
	if err != nil {
		return nil
	}
	ratio := (mean*tradingDaysPerYear - s.RiskFreeRate) / (stdev * math.Sqrt(tradingDaysPerYear))
	return &ratio
}

func (s *Service) sortino(returns []float64) *float64 {
	mean, err := stats.Mean(returns)
	if err != nil {
		return nil
	}
	dailyRf := s.RiskFreeRate / tradingDaysPerYear
	sumSq := 0.0
	for _, r := range returns {
		if d := r - dailyRf; d < 0 {
			sumSq += d * d
		}
	}
	downside := math.Sqrt(sumSq/float64(len(returns))) * math.Sqrt(tradingDaysPerYear)
	if downside == 0 {
		return nil
	}
	ratio := (mean*tradingDaysPerYear - s.RiskFreeRate) / downside
	return &ratio
}

// maxDrawdown is the largest peak-to-trough decline over the window,
// tracked via a running peak. Positive percent (13.6 == -13.6% trough).
func maxDrawdown(window domain.NavSeries) *float64 {
	if len(window) < 2 {
		return nil
	}
	peak := window[0].Nav
	worst := 0.0
	for _, p := range window[1:] {
		if p.Nav.GreaterThan(peak) {
			peak = p.Nav
			continue
		}
		dd := peak.Sub(p.Nav).Div(peak).InexactFloat64() * 100
		if dd > worst {
			worst = dd
		}
	}
	return &worst
}

// beta regresses the fund's daily returns against the benchmark's,
// matching observations by date. Absent when the overlap is too thin.
func (s *Service) beta(window domain.NavSeries, benchmark []domain.BenchmarkPoint, start, end time.Time) *float64 {
	if len(benchmark) < 2 {
		return nil
	}

	benchReturns := map[string]float64{}
	for i := 1; i < len(benchmark); i++ {
		b := benchmark[i]
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		prev := benchmark[i-1].Value
		if prev.IsZero() {
			continue
		}
		benchReturns[b.Date.Format(time.DateOnly)] = b.Value.Sub(prev).Div(prev).InexactFloat64()
	}

	fundSide := []float64{}
	benchSide := []float64{}
	for i := 1; i < len(window); i++ {
		br, ok := benchReturns[window[i].Date.Format(time.DateOnly)]
		if !ok {
			continue
		}
		prev := window[i-1].Nav
		if prev.IsZero() {
			continue
		}
		fr := window[i].Nav.Sub(prev).Div(prev).InexactFloat64()
		if math.Abs(fr) >= s.OutlierBound {
			continue
		}
		fundSide = append(fundSide, fr)
		benchSide = append(benchSide, br)
	}
	if len(fundSide) < s.MinDailyObs {
		return nil
	}

	cov, err := stats.Covariance(benchSide, fundSide)
	if err != nil {
		return nil
	}
	variance, err := stats.SampleVariance(benchSide)
	if err != nil || variance == 0 {
		return nil
	}
	b := cov / variance
	return &b
}

func fundIDOf(series domain.NavSeries) (id uuid.UUID) {
	if len(series) > 0 {
		return series[0].FundID
	}
	return
}
