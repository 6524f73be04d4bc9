package calculator

import (
	"testing"
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seriesFrom(start time.Time, stepDays int, navs ...float64) domain.NavSeries {
	id := uuid.New()
	out := domain.NavSeries{}
	for i, nav := range navs {
		out = append(out, domain.NavPoint{
			FundID: id,
			Date:   start.AddDate(0, 0, i*stepDays),
			Nav:    decimal.NewFromFloat(nav),
		})
	}
	return out
}

func Test_maxDrawdown(t *testing.T) {
	t.Run("peak to trough over quarterly points", func(t *testing.T) {
		start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		series := seriesFrom(start, 91, 100, 105, 110, 95, 120)

		dd := maxDrawdown(series)
		require.NotNil(t, dd)
		require.InDelta(t, (110.0-95.0)/110.0*100, *dd, 0.01)
	})

	t.Run("monotonic series has zero drawdown", func(t *testing.T) {
		start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		series := seriesFrom(start, 1, 100, 101, 102, 103)

		dd := maxDrawdown(series)
		require.NotNil(t, dd)
		require.Equal(t, 0.0, *dd)
	})

	t.Run("single point is absent", func(t *testing.T) {
		start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		require.Nil(t, maxDrawdown(seriesFrom(start, 1, 100)))
	})
}

func Test_periodReturn(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one year total return", func(t *testing.T) {
		series := seriesFrom(start, 91, 100, 105, 110, 95, 120)
		latest := series[len(series)-1]

		ret := periodReturn(series, latest, start, 30, false)
		require.NotNil(t, ret)
		require.InDelta(t, 20.0, *ret, 0.01)
	})

	t.Run("absent when no observation within tolerance", func(t *testing.T) {
		series := seriesFrom(start, 91, 100, 105, 110, 95, 120)
		latest := series[len(series)-1]

		target := start.AddDate(0, 0, -400)
		require.Nil(t, periodReturn(series, latest, target, 30, false))
	})

	t.Run("annualized over actual day span", func(t *testing.T) {
		// 44% over ~2 years is ~20%/yr
		series := seriesFrom(start, 365, 100, 120, 144)
		latest := series[len(series)-1]

		ret := periodReturn(series, latest, start, 90, true)
		require.NotNil(t, ret)
		require.InDelta(t, 20.0, *ret, 0.5)
	})
}

func TestService_Compute(t *testing.T) {
	svc := NewService()

	t.Run("short history yields all absent", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		series := seriesFrom(start, 1, 100, 101, 102, 101, 103)

		got := svc.Compute(series, nil, start.AddDate(0, 0, 30))
		require.True(t, got.Empty())
		require.Nil(t, got.Volatility)
		require.Nil(t, got.Sharpe)
		require.Nil(t, got.MaxDrawdown)
	})

	t.Run("dense year of history fills the set", func(t *testing.T) {
		start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		navs := []float64{}
		nav := 100.0
		for i := 0; i < 400; i++ {
			// deterministic wobble with upward drift
			if i%5 == 3 {
				nav *= 0.995
			} else {
				nav *= 1.002
			}
			navs = append(navs, nav)
		}
		series := seriesFrom(start, 1, navs...)
		asOf := series[len(series)-1].Date

		got := svc.Compute(series, nil, asOf)
		require.False(t, got.Empty())
		require.NotNil(t, got.PeriodReturn(domain.Period1Y))
		require.NotNil(t, got.PeriodReturn(domain.Period3M))
		require.Nil(t, got.PeriodReturn(domain.Period5Y), "insufficient history for 5Y")
		require.NotNil(t, got.Volatility)
		require.NotNil(t, got.Sharpe)
		require.NotNil(t, got.Sortino)
		require.NotNil(t, got.MaxDrawdown)
		require.Nil(t, got.Beta, "no benchmark series supplied")
		require.Greater(t, *got.PeriodReturn(domain.Period1Y), 0.0)
	})

	t.Run("outlier daily moves are excluded from volatility", func(t *testing.T) {
		start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		navs := []float64{}
		nav := 100.0
		for i := 0; i < 300; i++ {
			if i%2 == 0 {
				nav *= 1.002
			} else {
				nav *= 0.999
			}
			navs = append(navs, nav)
		}
		clean := seriesFrom(start, 1, navs...)

		// inject a bogus 50% single-day spike mid-series
		spiked := make(domain.NavSeries, len(clean))
		copy(spiked, clean)
		spiked[150].Nav = spiked[149].Nav.Mul(decimal.NewFromFloat(1.5))

		asOf := clean[len(clean)-1].Date
		cleanVol := svc.Compute(clean, nil, asOf).Volatility
		spikedVol := svc.Compute(spiked, nil, asOf).Volatility
		require.NotNil(t, cleanVol)
		require.NotNil(t, spikedVol)
		// the spike day and its reversal are both dropped, so the two
		// series should not differ wildly
		require.InDelta(t, *cleanVol, *spikedVol, 1.0)
	})

	t.Run("deterministic across invocations", func(t *testing.T) {
		start := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
		navs := []float64{}
		nav := 50.0
		for i := 0; i < 500; i++ {
			if i%3 == 0 {
				nav *= 0.999
			} else {
				nav *= 1.0015
			}
			navs = append(navs, nav)
		}
		series := seriesFrom(start, 1, navs...)
		asOf := series[len(series)-1].Date

		first := svc.Compute(series, nil, asOf)
		second := svc.Compute(series, nil, asOf)
		require.Equal(t, *first.PeriodReturn(domain.Period1Y), *second.PeriodReturn(domain.Period1Y))
		require.Equal(t, *first.Volatility, *second.Volatility)
	})
}

func TestService_Compute_beta(t *testing.T) {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	id := uuid.New()

	series := domain.NavSeries{}
	benchmark := []domain.BenchmarkPoint{}
	nav, idx := 100.0, 1000.0
	for i := 0; i < 300; i++ {
		// fund moves at exactly half the benchmark's daily return
		benchRet := 0.002
		if i%4 == 1 {
			benchRet = -0.001
		}
		idx *= 1 + benchRet
		nav *= 1 + benchRet/2
		date := start.AddDate(0, 0, i)
		series = append(series, domain.NavPoint{FundID: id, Date: date, Nav: decimal.NewFromFloat(nav)})
		benchmark = append(benchmark, domain.BenchmarkPoint{Name: "NIFTY 50", Date: date, Value: decimal.NewFromFloat(idx)})
	}

	got := NewService().Compute(series, benchmark, series[len(series)-1].Date)
	require.NotNil(t, got.Beta)
	require.InDelta(t, 0.5, *got.Beta, 0.01)
}
