package backtest

import (
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input is everything a simulation needs, fetched up front. The
// simulator itself is pure: no I/O, safe to recompute.
type Input struct {
	Allocation      domain.Allocation
	Start           time.Time
	End             time.Time
	InitialAmount   decimal.Decimal
	RebalancePeriod domain.RebalancePeriod

	// NavSeries maps each allocation fund to its ordered NAV history
	// covering (at least) the simulated range.
	NavSeries map[uuid.UUID]domain.NavSeries

	// Benchmark is optional; when present the result carries alpha,
	// beta, tracking error and capture ratios.
	Benchmark []domain.BenchmarkPoint

	// RiskFreeRate is annual, as a fraction.
	RiskFreeRate float64
}

func (in Input) validate() error {
	if err := in.Allocation.Validate(); err != nil {
		return err
	}
	if !in.Start.Before(in.End) {
		return domain.InvalidInputError{Field: "dateRange", Reason: "start must be before end"}
	}
	if in.InitialAmount.LessThanOrEqual(decimal.Zero) {
		return domain.InvalidInputError{Field: "initialAmount", Reason: "must be positive"}
	}
	return nil
}

// sleeve tracks one fund's slice of the portfolio between rebalances.
type sleeve struct {
	fundID   uuid.UUID
	weight   float64
	navs     *navLookup
	excluded bool

	// base is the money allocated to this sleeve at the last
	// rebalance; refNav is the fund's NAV on that date.
	base   decimal.Decimal
	refNav decimal.Decimal
}

// Run replays the allocation's NAV histories day by day over the range.
// Missing NAV observations are filled by the last known value carried
// forward. A fund with no NAV data at all in range is excluded and its
// weight held flat as uninvested cash - remaining weights are NOT
// renormalized, so the portfolio under-invests rather than silently
// inflating the other funds.
func Run(in Input) (*domain.BacktestResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	result := &domain.BacktestResult{
		Allocation:      in.Allocation,
		Start:           in.Start,
		End:             in.End,
		InitialAmount:   in.InitialAmount,
		RebalancePeriod: in.RebalancePeriod,
	}

	sleeves := make([]*sleeve, 0, len(in.Allocation.Entries))
	for _, entry := range in.Allocation.Entries {
		lookup := newNavLookup(in.NavSeries[entry.FundID], in.Start, in.End)
		sl := &sleeve{
			fundID: entry.FundID,
			weight: entry.Weight,
			navs:   lookup,
			base:   in.InitialAmount.Mul(decimal.NewFromFloat(entry.Weight)),
		}
		if lookup.empty() {
			sl.excluded = true
			result.ExcludedFunds = append(result.ExcludedFunds, entry.FundID)
		}
		sleeves = append(sleeves, sl)
	}

	rebalanceAt := in.RebalancePeriod.Next(in.Start)
	setReferenceNavs(sleeves, in.Start)

	for date := in.Start; !date.After(in.End); date = date.AddDate(0, 0, 1) {
		if !rebalanceAt.IsZero() && !date.Before(rebalanceAt) {
			total := portfolioValue(sleeves, date)
			for _, sl := range sleeves {
				sl.base = total.Mul(decimal.NewFromFloat(sl.weight))
			}
			setReferenceNavs(sleeves, date)
			rebalanceAt = in.RebalancePeriod.Next(rebalanceAt)
		}

		result.ValueCurve = append(result.ValueCurve, domain.ValuePoint{
			Date:  date,
			Value: portfolioValue(sleeves, date),
		})
	}

	result.Attribution = attribution(sleeves, in)
	result.BenchmarkCurve = benchmarkCurve(in)
	result.Summary = summarize(result.ValueCurve, result.BenchmarkCurve, in.RiskFreeRate)

	return result, nil
}

func setReferenceNavs(sleeves []*sleeve, date time.Time) {
	for _, sl := range sleeves {
		if sl.excluded {
			continue
		}
		if nav, ok := sl.navs.at(date); ok {
			sl.refNav = nav
		} else {
			sl.refNav = decimal.Zero
		}
	}
}

// portfolioValue sums each sleeve's base grown by the fund's own
// NAV-relative move since the last rebalance. A sleeve whose reference
// NAV is unknown yet (fund history starts mid-range) stays flat until
// the first observation arrives, then participates from that NAV.
func portfolioValue(sleeves []*sleeve, date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, sl := range sleeves {
		if sl.excluded {
			total = total.Add(sl.base)
			continue
		}
		nav, ok := sl.navs.at(date)
		if !ok {
			total = total.Add(sl.base)
			continue
		}
		if sl.refNav.IsZero() {
			sl.refNav = nav
		}
		total = total.Add(sl.base.Mul(nav).Div(sl.refNav))
	}
	return total
}

// attribution reports each fund's own absolute return over the period
// and its weighted contribution to portfolio return. A fund whose
// history starts mid-range is measured from its first in-range
// observation. Excluded funds carry a nil return and zero contribution.
func attribution(sleeves []*sleeve, in Input) []domain.Attribution {
	out := make([]domain.Attribution, 0, len(sleeves))
	for _, sl := range sleeves {
		attr := domain.Attribution{FundID: sl.fundID, Weight: sl.weight}
		if !sl.excluded {
			startNav, okStart := sl.navs.at(in.Start)
			if !okStart {
				startNav, okStart = sl.navs.first()
			}
			endNav, okEnd := sl.navs.at(in.End)
			if okStart && okEnd && !startNav.IsZero() {
				ret := endNav.Sub(startNav).Div(startNav).InexactFloat64() * 100
				attr.AbsoluteReturn = &ret
				attr.Contribution = sl.weight * ret
			}
		}
		out = append(out, attr)
	}
	return out
}

// benchmarkCurve resamples the benchmark series onto the simulated
// range with the same carry-forward rule as fund NAVs.
func benchmarkCurve(in Input) []domain.ValuePoint {
	if len(in.Benchmark) == 0 {
		return nil
	}
	series := make(domain.NavSeries, 0, len(in.Benchmark))
	for _, p := range in.Benchmark {
		series = append(series, domain.NavPoint{Date: p.Date, Nav: p.Value})
	}
	series.Sort()
	lookup := newNavLookup(series, in.Start, in.End)
	if lookup.empty() {
		return nil
	}

	out := []domain.ValuePoint{}
	for date := in.Start; !date.After(in.End); date = date.AddDate(0, 0, 1) {
		if v, ok := lookup.at(date); ok {
			out = append(out, domain.ValuePoint{Date: date, Value: v})
		}
	}
	return out
}

// navLookup answers "NAV on date" with last-known-value-carried-forward
// semantics, precomputed once per fund for the whole range.
type navLookup struct {
	byDate   map[string]decimal.Decimal
	firstNav *decimal.Decimal
}

func newNavLookup(series domain.NavSeries, start, end time.Time) *navLookup {
	l := &navLookup{byDate: map[string]decimal.Decimal{}}
	if len(series) == 0 {
		return l
	}

	i := 0
	var last *decimal.Decimal
	// seed with the latest observation on or before start
	if p := series.Latest(start); p != nil {
		nav := p.Nav
		last = &nav
		for i < len(series) && !series[i].Date.After(start) {
			i++
		}
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for i < len(series) && !series[i].Date.After(date) {
			nav := series[i].Nav
			last = &nav
			i++
		}
		if last != nil {
			if l.firstNav == nil {
				nav := *last
				l.firstNav = &nav
			}
			l.byDate[date.Format(time.DateOnly)] = *last
		}
	}
	return l
}

func (l *navLookup) at(date time.Time) (decimal.Decimal, bool) {
	v, ok := l.byDate[date.Format(time.DateOnly)]
	return v, ok
}

// first is the NAV on the earliest date the lookup can answer.
func (l *navLookup) first() (decimal.Decimal, bool) {
	if l.firstNav == nil {
		return decimal.Zero, false
	}
	return *l.firstNav, true
}

func (l *navLookup) empty() bool {
	return len(l.byDate) == 0
}
