package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NavPoint is a single NAV observation for a fund. NAV history is
// append-only; no two points share a date for the same fund.
type NavPoint struct {
	FundID uuid.UUID
	Date   time.Time
	Nav    decimal.Decimal
}

// NavSeries is a fund's NAV history ordered ascending by date.
type NavSeries []NavPoint

func (s NavSeries) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Date.Before(s[j].Date)
	})
}

// Until returns the prefix of the series on or before the given date.
// The series is ordered, so this is a binary search for the cut point.
func (s NavSeries) Until(date time.Time) NavSeries {
	n := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(date)
	})
	return s[:n]
}

// Latest returns the last observation on or before date, or nil.
func (s NavSeries) Latest(date time.Time) *NavPoint {
	prefix := s.Until(date)
	if len(prefix) == 0 {
		return nil
	}
	p := prefix[len(prefix)-1]
	return &p
}

// ClosestWithin returns the observation nearest to target, provided it
// falls within tolerance days of it. Returns nil otherwise - callers
// treat that as "period unavailable", never as zero.
func (s NavSeries) ClosestWithin(target time.Time, toleranceDays int) *NavPoint {
	if len(s) == 0 {
		return nil
	}
	i := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(target)
	})

	var candidate *NavPoint
	if i < len(s) {
		p := s[i]
		candidate = &p
	}
	if i > 0 {
		p := s[i-1]
		if candidate == nil || absDays(p.Date, target) < absDays(candidate.Date, target) {
			candidate = &p
		}
	}
	if candidate == nil || absDays(candidate.Date, target) > toleranceDays {
		return nil
	}
	return candidate
}

// DailyReturns converts consecutive observations into simple returns,
// expressed as fractions (0.01 == 1%).
func (s NavSeries) DailyReturns() []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Nav
		if prev.IsZero() {
			continue
		}
		out = append(out, s[i].Nav.Sub(prev).Div(prev).InexactFloat64())
	}
	return out
}

func absDays(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// BenchmarkPoint is one observation of a benchmark index series.
type BenchmarkPoint struct {
	Name  string
	Date  time.Time
	Value decimal.Decimal
}
