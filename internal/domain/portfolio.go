package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// weightTolerance bounds rounding drift on allocation weights.
const weightTolerance = 1e-4

type AllocationEntry struct {
	FundID uuid.UUID
	Weight float64
}

// Allocation is a weighted basket of funds. Weights must sum to 1.0
// within rounding tolerance.
type Allocation struct {
	Name    string
	Entries []AllocationEntry
}

func (a Allocation) Validate() error {
	if len(a.Entries) == 0 {
		return InvalidInputError{Field: "allocation", Reason: "no entries"}
	}
	seen := map[uuid.UUID]bool{}
	sum := 0.0
	for _, e := range a.Entries {
		if e.Weight <= 0 {
			return InvalidInputError{Field: "allocation", Reason: "weights must be positive"}
		}
		if seen[e.FundID] {
			return InvalidInputError{Field: "allocation", Reason: "duplicate fund " + e.FundID.String()}
		}
		seen[e.FundID] = true
		sum += e.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return InvalidInputError{Field: "allocation", Reason: "weights must sum to 1.0"}
	}
	return nil
}

type RebalancePeriod string

const (
	RebalanceNone      RebalancePeriod = "none"
	RebalanceMonthly   RebalancePeriod = "monthly"
	RebalanceQuarterly RebalancePeriod = "quarterly"
	RebalanceAnnually  RebalancePeriod = "annually"
)

func ParseRebalancePeriod(s string) (RebalancePeriod, error) {
	switch RebalancePeriod(s) {
	case RebalanceNone, RebalanceMonthly, RebalanceQuarterly, RebalanceAnnually:
		return RebalancePeriod(s), nil
	case "":
		return RebalanceNone, nil
	}
	return "", InvalidInputError{Field: "rebalancePeriod", Reason: "unknown period " + s}
}

// Next returns the rebalance boundary following t, or zero time when
// rebalancing is off.
func (p RebalancePeriod) Next(t time.Time) time.Time {
	switch p {
	case RebalanceMonthly:
		return t.AddDate(0, 1, 0)
	case RebalanceQuarterly:
		return t.AddDate(0, 3, 0)
	case RebalanceAnnually:
		return t.AddDate(1, 0, 0)
	}
	return time.Time{}
}

type ValuePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// Attribution decomposes portfolio return into one fund's contribution.
// Contribution = target weight x the fund's own absolute return.
type Attribution struct {
	FundID         uuid.UUID
	Weight         float64
	AbsoluteReturn *float64 // percent; nil when the fund had no NAV data in range
	Contribution   float64  // percentage points of portfolio return
}

// PerformanceSummary aggregates return/risk statistics of a simulated
// portfolio. Benchmark-relative fields are nil when no benchmark series
// was supplied.
type PerformanceSummary struct {
	TotalReturn      float64 // percent
	AnnualizedReturn float64 // percent
	Volatility       *float64
	Sharpe           *float64
	MaxDrawdown      *float64

	Alpha         *float64
	Beta          *float64
	TrackingError *float64
	UpCapture     *float64
	DownCapture   *float64
}

// BacktestResult is computed on demand and safe to recompute; it is
// never persisted as authoritative state.
type BacktestResult struct {
	Allocation      Allocation
	Start           time.Time
	End             time.Time
	InitialAmount   decimal.Decimal
	RebalancePeriod RebalancePeriod

	ValueCurve     []ValuePoint
	BenchmarkCurve []ValuePoint
	Summary        PerformanceSummary
	Attribution    []Attribution

	// funds excluded for having no NAV data in range. their weight is
	// held flat, not redistributed.
	ExcludedFunds []uuid.UUID
}
