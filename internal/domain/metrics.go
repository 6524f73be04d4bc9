package domain

import (
	"time"

	"github.com/google/uuid"
)

// Period names a return lookback window.
type Period string

const (
	Period3M  Period = "3M"
	Period6M  Period = "6M"
	Period1Y  Period = "1Y"
	Period3Y  Period = "3Y"
	Period5Y  Period = "5Y"
	PeriodYTD Period = "YTD"
)

// MetricSet holds point-in-time return and risk statistics for one fund.
// Every field is either a finite number or nil ("unavailable"). Nothing
// in the engine ever substitutes a neutral default for a nil metric.
type MetricSet struct {
	FundID uuid.UUID
	AsOf   time.Time

	// percent, e.g. 12.5 == +12.5%. Periods longer than 1Y are
	// annualized; 1Y and shorter are absolute.
	PeriodReturns map[Period]*float64

	Volatility  *float64 // annualized stdev of daily returns, percent
	Sharpe      *float64
	Sortino     *float64
	MaxDrawdown *float64 // percent decline from running peak, positive
	Beta        *float64 // vs the fund's assigned benchmark
}

func NewMetricSet(fundID uuid.UUID, asOf time.Time) MetricSet {
	return MetricSet{
		FundID:        fundID,
		AsOf:          asOf,
		PeriodReturns: map[Period]*float64{},
	}
}

// Empty reports whether no metric could be computed at all.
func (m MetricSet) Empty() bool {
	for _, r := range m.PeriodReturns {
		if r != nil {
			return false
		}
	}
	return m.Volatility == nil && m.Sharpe == nil && m.Sortino == nil &&
		m.MaxDrawdown == nil && m.Beta == nil
}

func (m MetricSet) PeriodReturn(p Period) *float64 {
	return m.PeriodReturns[p]
}
