package backtest

import (
	"testing"
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type navObs struct {
	date time.Time
	nav  float64
}

func seriesOf(fundID uuid.UUID, obs ...navObs) domain.NavSeries {
	out := domain.NavSeries{}
	for _, o := range obs {
		out = append(out, domain.NavPoint{
			FundID: fundID,
			Date:   o.date,
			Nav:    decimal.NewFromFloat(o.nav),
		})
	}
	out.Sort()
	return out
}

func baseInput(allocation domain.Allocation, navs map[uuid.UUID]domain.NavSeries) Input {
	return Input{
		Allocation:      allocation,
		Start:           day(2024, 1, 1),
		End:             day(2024, 3, 1),
		InitialAmount:   decimal.NewFromInt(1000),
		RebalancePeriod: domain.RebalanceNone,
		NavSeries:       navs,
		RiskFreeRate:    0.065,
	}
}

func TestRun(t *testing.T) {
	fundA := uuid.New()
	fundB := uuid.New()

	t.Run("single fund tracks its own nav return exactly", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 2, 1), 104},
				navObs{day(2024, 3, 1), 110},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, navs)

		result, err := Run(in)
		require.NoError(t, err)

		require.InDelta(t, 10.0, result.Summary.TotalReturn, 0.001)
		final := result.ValueCurve[len(result.ValueCurve)-1].Value
		require.True(t, final.Equal(decimal.NewFromInt(1100)), "got %s", final)
		require.Empty(t, result.ExcludedFunds)
	})

	t.Run("weighted basket blends fund returns", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 3, 1), 110},
			),
			fundB: seriesOf(fundB,
				navObs{day(2024, 1, 1), 50},
				navObs{day(2024, 3, 1), 47.5},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{
			{FundID: fundA, Weight: 0.6},
			{FundID: fundB, Weight: 0.4},
		}}, navs)

		result, err := Run(in)
		require.NoError(t, err)

		// 0.6 * 10% + 0.4 * -5% = 4%
		require.InDelta(t, 4.0, result.Summary.TotalReturn, 0.001)

		contributionSum := 0.0
		for _, attr := range result.Attribution {
			require.NotNil(t, attr.AbsoluteReturn)
			contributionSum += attr.Contribution
		}
		require.InDelta(t, result.Summary.TotalReturn, contributionSum, 0.001)
	})

	t.Run("gaps carry the last nav forward", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 1, 10), 105},
				navObs{day(2024, 3, 1), 105},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, navs)

		result, err := Run(in)
		require.NoError(t, err)

		// Jan 5 sits inside the gap; value holds at the Jan 1 nav
		require.True(t, result.ValueCurve[4].Value.Equal(decimal.NewFromInt(1000)),
			"got %s", result.ValueCurve[4].Value)
		// the day the gap closes the jump shows up
		require.True(t, result.ValueCurve[9].Value.Equal(decimal.NewFromInt(1050)),
			"got %s", result.ValueCurve[9].Value)
	})

	t.Run("fund without nav data is excluded and its weight held flat", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 3, 1), 110},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{
			{FundID: fundA, Weight: 0.5},
			{FundID: fundB, Weight: 0.5},
		}}, navs)

		result, err := Run(in)
		require.NoError(t, err)

		require.Equal(t, []uuid.UUID{fundB}, result.ExcludedFunds)
		// excluded half stays at par rather than inflating fund A
		require.InDelta(t, 5.0, result.Summary.TotalReturn, 0.001)

		for _, attr := range result.Attribution {
			if attr.FundID == fundB {
				require.Nil(t, attr.AbsoluteReturn)
				require.Equal(t, 0.0, attr.Contribution)
			}
		}
	})

	t.Run("fund whose history starts mid-range joins at its first nav", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 2, 1), 100},
				navObs{day(2024, 3, 1), 110},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, navs)

		result, err := Run(in)
		require.NoError(t, err)

		require.Empty(t, result.ExcludedFunds)
		// cash until Feb 1, then the fund's own move from its first nav
		require.True(t, result.ValueCurve[0].Value.Equal(decimal.NewFromInt(1000)),
			"got %s", result.ValueCurve[0].Value)
		final := result.ValueCurve[len(result.ValueCurve)-1].Value
		require.True(t, final.Equal(decimal.NewFromInt(1100)), "got %s", final)
		require.InDelta(t, 10.0, result.Summary.TotalReturn, 0.001)

		require.Len(t, result.Attribution, 1)
		require.NotNil(t, result.Attribution[0].AbsoluteReturn)
		require.InDelta(t, 10.0, *result.Attribution[0].AbsoluteReturn, 0.001)
		require.InDelta(t, 10.0, result.Attribution[0].Contribution, 0.001)
	})

	t.Run("monthly rebalance resets weights at boundaries", func(t *testing.T) {
		// A doubles in month one then goes flat; B does the reverse.
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 2, 1), 200},
				navObs{day(2024, 3, 1), 200},
			),
			fundB: seriesOf(fundB,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 2, 1), 100},
				navObs{day(2024, 3, 1), 200},
			),
		}
		allocation := domain.Allocation{Entries: []domain.AllocationEntry{
			{FundID: fundA, Weight: 0.5},
			{FundID: fundB, Weight: 0.5},
		}}

		buyAndHold, err := Run(baseInput(allocation, navs))
		require.NoError(t, err)
		require.InDelta(t, 100.0, buyAndHold.Summary.TotalReturn, 0.001)

		in := baseInput(allocation, navs)
		in.RebalancePeriod = domain.RebalanceMonthly
		rebalanced, err := Run(in)
		require.NoError(t, err)

		// the Feb 1 rebalance shifts half of A's gains into B before B's
		// run-up: 1.5 * (0.5*1 + 0.5*2) = 2.25x
		require.InDelta(t, 125.0, rebalanced.Summary.TotalReturn, 0.001)
	})

	t.Run("benchmark enables relative statistics", func(t *testing.T) {
		obs := []navObs{}
		bench := []domain.BenchmarkPoint{}
		nav := 100.0
		for i := 0; i <= 60; i++ {
			date := day(2024, 1, 1).AddDate(0, 0, i)
			if i > 0 {
				if i%2 == 0 {
					nav *= 1.002
				} else {
					nav *= 0.999
				}
			}
			obs = append(obs, navObs{date, nav})
			bench = append(bench, domain.BenchmarkPoint{
				Name:  "NIFTY 50",
				Date:  date,
				Value: decimal.NewFromFloat(nav),
			})
		}
		navs := map[uuid.UUID]domain.NavSeries{fundA: seriesOf(fundA, obs...)}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, navs)
		in.Benchmark = bench

		result, err := Run(in)
		require.NoError(t, err)

		require.NotNil(t, result.Summary.Beta)
		require.InDelta(t, 1.0, *result.Summary.Beta, 0.001, "fund mirrors its benchmark")
		require.NotNil(t, result.Summary.TrackingError)
		require.InDelta(t, 0.0, *result.Summary.TrackingError, 0.001)
		require.NotNil(t, result.Summary.UpCapture)
		require.InDelta(t, 100.0, *result.Summary.UpCapture, 0.001)
		require.NotNil(t, result.Summary.DownCapture)
		require.InDelta(t, 100.0, *result.Summary.DownCapture, 0.001)
		require.NotNil(t, result.Summary.Alpha)
		require.InDelta(t, 0.0, *result.Summary.Alpha, 0.01)
		require.NotNil(t, result.Summary.Volatility)
		require.Greater(t, *result.Summary.Volatility, 0.0)
	})

	t.Run("no benchmark leaves relative fields nil", func(t *testing.T) {
		navs := map[uuid.UUID]domain.NavSeries{
			fundA: seriesOf(fundA,
				navObs{day(2024, 1, 1), 100},
				navObs{day(2024, 3, 1), 110},
			),
		}
		in := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, navs)

		result, err := Run(in)
		require.NoError(t, err)
		require.Nil(t, result.Summary.Beta)
		require.Nil(t, result.Summary.Alpha)
		require.Nil(t, result.Summary.TrackingError)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		valid := baseInput(domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 1.0}}}, nil)

		badWeights := valid
		badWeights.Allocation = domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fundA, Weight: 0.7}}}
		_, err := Run(badWeights)
		require.ErrorAs(t, err, &domain.InvalidInputError{})

		badRange := valid
		badRange.End = badRange.Start
		_, err = Run(badRange)
		require.ErrorAs(t, err, &domain.InvalidInputError{})

		badAmount := valid
		badAmount.InitialAmount = decimal.Zero
		_, err = Run(badAmount)
		require.ErrorAs(t, err, &domain.InvalidInputError{})
	})
}

func Test_maxDrawdown(t *testing.T) {
	curve := func(values ...float64) []domain.ValuePoint {
		out := []domain.ValuePoint{}
		for i, v := range values {
			out = append(out, domain.ValuePoint{
				Date:  day(2024, 1, 1).AddDate(0, 0, i),
				Value: decimal.NewFromFloat(v),
			})
		}
		return out
	}

	t.Run("largest peak-to-trough decline", func(t *testing.T) {
		dd := maxDrawdown(curve(100, 105, 110, 95, 120))
		require.NotNil(t, dd)
		require.InDelta(t, (110.0-95.0)/110.0*100, *dd, 0.001)
	})

	t.Run("monotonic curve has none", func(t *testing.T) {
		require.Nil(t, maxDrawdown(curve(100, 101, 102, 105)))
	})
}
