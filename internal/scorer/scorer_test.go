package scorer

import (
	"testing"
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func fullMetricSet() domain.MetricSet {
	m := domain.NewMetricSet(uuid.New(), time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	m.PeriodReturns = map[domain.Period]*float64{
		domain.Period3M:  floatPtr(5),
		domain.Period6M:  floatPtr(9),
		domain.Period1Y:  floatPtr(18),
		domain.Period3Y:  floatPtr(16),
		domain.Period5Y:  floatPtr(14),
		domain.PeriodYTD: floatPtr(8),
	}
	m.Volatility = floatPtr(12)
	m.Sharpe = floatPtr(1.2)
	m.Sortino = floatPtr(1.5)
	m.MaxDrawdown = floatPtr(9)
	m.Beta = floatPtr(0.95)
	return m
}

func testFund() domain.Fund {
	inception := time.Date(2012, 4, 2, 0, 0, 0, 0, time.UTC)
	return domain.Fund{
		ID:            uuid.New(),
		SchemeCode:    "118834",
		Name:          "Axis Bluechip Fund - Direct Growth",
		Category:      domain.CategoryEquity,
		Subcategory:   "Large Cap",
		ExpenseRatio:  floatPtr(0.45),
		InceptionDate: &inception,
		MinInvestment: floatPtr(500),
		ExitLoad:      floatPtr(0),
		AumCrores:     floatPtr(32000),
	}
}

func TestScorer_Score(t *testing.T) {
	scoreDate := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	s := New(DefaultConfig())

	t.Run("sub-scores respect their caps", func(t *testing.T) {
		rec := s.Score(testFund(), fullMetricSet(), nil, scoreDate)

		require.LessOrEqual(t, rec.ReturnsTotal, 40.0)
		require.LessOrEqual(t, rec.RiskTotal, 30.0)
		require.LessOrEqual(t, rec.FundamentalsTotal, 15.0)
		require.LessOrEqual(t, rec.OtherTotal, 15.0)
		require.LessOrEqual(t, rec.Total, 100.0)
		require.Equal(t, rec.ReturnsTotal+rec.RiskTotal+rec.FundamentalsTotal+rec.OtherTotal, rec.Total)
	})

	t.Run("strong fund scores high on absolute bands", func(t *testing.T) {
		rec := s.Score(testFund(), fullMetricSet(), nil, scoreDate)

		// 1Y and 3Y clear the 15% breakpoint; risk inputs all land in
		// healthy bands; fundamentals near max
		require.Greater(t, rec.ReturnsTotal, 20.0)
		require.GreaterOrEqual(t, rec.RiskTotal, 20.0)
		require.GreaterOrEqual(t, rec.FundamentalsTotal, 14.0)
		require.Greater(t, rec.Total, 60.0)
	})

	t.Run("absent period returns contribute zero", func(t *testing.T) {
		m := fullMetricSet()
		m.PeriodReturns[domain.Period3Y] = nil
		m.PeriodReturns[domain.Period5Y] = nil

		full := s.Score(testFund(), fullMetricSet(), nil, scoreDate)
		partial := s.Score(testFund(), m, nil, scoreDate)

		// 3Y (16%) and 5Y (14%) were worth 8*1.0 and 8*0.8
		require.InDelta(t, full.ReturnsTotal-(8*1.0+8*0.8), partial.ReturnsTotal, 0.001)
	})

	t.Run("empty metric set scores only non-return inputs", func(t *testing.T) {
		empty := domain.NewMetricSet(uuid.New(), scoreDate)
		rec := s.Score(testFund(), empty, nil, scoreDate)

		require.Equal(t, 0.0, rec.ReturnsTotal)
		require.Equal(t, 0.0, rec.RiskTotal)
		require.Greater(t, rec.FundamentalsTotal, 0.0, "static attributes still score")
		require.Greater(t, rec.OtherTotal, 0.0)
	})

	t.Run("partial risk data is not renormalized", func(t *testing.T) {
		m := fullMetricSet()
		m.Beta = nil
		m.MaxDrawdown = nil

		full := s.Score(testFund(), fullMetricSet(), nil, scoreDate)
		partial := s.Score(testFund(), m, nil, scoreDate)

		// beta band was worth 7, drawdown band 7; nothing else moves
		require.InDelta(t, full.RiskTotal-14, partial.RiskTotal, 0.001)
	})

	t.Run("unknown fund attributes contribute zero", func(t *testing.T) {
		bare := domain.Fund{ID: uuid.New(), Category: domain.CategoryEquity, Subcategory: "Mid Cap"}
		rec := s.Score(bare, fullMetricSet(), nil, scoreDate)

		require.Equal(t, 0.0, rec.FundamentalsTotal)
		require.Equal(t, 0.0, rec.OtherTotal)
	})
}

func TestScorer_percentileScoring(t *testing.T) {
	scoreDate := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	s := New(DefaultConfig())

	buildPeers := func(oneYearReturns ...float64) PeerDistribution {
		sets := []domain.MetricSet{}
		for _, r := range oneYearReturns {
			m := domain.NewMetricSet(uuid.New(), scoreDate)
			m.PeriodReturns[domain.Period1Y] = floatPtr(r)
			sets = append(sets, m)
		}
		return NewPeerDistribution(sets)
	}

	metricWith1Y := func(r float64) domain.MetricSet {
		m := domain.NewMetricSet(uuid.New(), scoreDate)
		m.PeriodReturns[domain.Period1Y] = floatPtr(r)
		return m
	}

	t.Run("top of cohort earns full period weight", func(t *testing.T) {
		peers := buildPeers(2, 4, 6, 8, 10, 12, 14, 16, 18, 20)
		rec := s.Score(testFund(), metricWith1Y(20), peers, scoreDate)
		require.InDelta(t, 10.0, rec.ReturnsTotal, 0.001) // full 1Y weight
	})

	t.Run("bottom decile earns zero", func(t *testing.T) {
		peers := buildPeers(2, 4, 6, 8, 10, 12, 14, 16, 18, 20)
		rec := s.Score(testFund(), metricWith1Y(1), peers, scoreDate)
		require.Equal(t, 0.0, rec.ReturnsTotal)
	})

	t.Run("median lands mid-band", func(t *testing.T) {
		peers := buildPeers(2, 4, 6, 8, 10, 12, 14, 16, 18, 20)
		rec := s.Score(testFund(), metricWith1Y(10), peers, scoreDate)
		require.InDelta(t, 10.0*0.5, rec.ReturnsTotal, 0.001)
	})

	t.Run("tiny cohort falls back to absolute breakpoints", func(t *testing.T) {
		peers := buildPeers(5, 10)
		rec := s.Score(testFund(), metricWith1Y(16), peers, scoreDate)
		require.InDelta(t, 10.0, rec.ReturnsTotal, 0.001) // >= 15% absolute band
	})

	t.Run("percentile banding is self normalizing in a down market", func(t *testing.T) {
		// every absolute return is negative, but the best of cohort
		// still earns full points
		peers := buildPeers(-20, -18, -15, -12, -10, -8, -6, -5, -3, -1)
		rec := s.Score(testFund(), metricWith1Y(-1), peers, scoreDate)
		require.InDelta(t, 10.0, rec.ReturnsTotal, 0.001)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.validate())
	require.Equal(t, 100.0, cfg.ReturnsMax+cfg.RiskMax+cfg.FundamentalsMax+cfg.OtherMax)

	weightSum := 0.0
	for _, w := range cfg.PeriodWeights {
		weightSum += w
	}
	require.Equal(t, cfg.ReturnsMax, weightSum)
}
