package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryEquity Category = "Equity"
	CategoryDebt   Category = "Debt"
	CategoryHybrid Category = "Hybrid"
)

// Fund holds identity and the static attributes scoring needs.
// Attributes may be revised; NAV history is append-only.
type Fund struct {
	ID            uuid.UUID
	SchemeCode    string
	Name          string
	Category      Category
	Subcategory   string
	BenchmarkName string
	ExpenseRatio  *float64
	InceptionDate *time.Time
	MinInvestment *float64
	ExitLoad      *float64
	AumCrores     *float64
}

// PeerGroupKey identifies the cohort a fund is ranked within. Peer
// groups never mix risk profiles - a liquid debt fund is never ranked
// against a small cap equity fund.
type PeerGroupKey struct {
	Category    Category
	Subcategory string
}

func (k PeerGroupKey) String() string {
	if k.Subcategory == "" {
		return string(k.Category)
	}
	return fmt.Sprintf("%s/%s", k.Category, k.Subcategory)
}

func (f Fund) PeerGroup() PeerGroupKey {
	return PeerGroupKey{Category: f.Category, Subcategory: f.Subcategory}
}

// TrackRecordYears is years since inception as of the given date,
// or nil when the inception date is unknown.
func (f Fund) TrackRecordYears(asOf time.Time) *float64 {
	if f.InceptionDate == nil || f.InceptionDate.After(asOf) {
		return nil
	}
	years := asOf.Sub(*f.InceptionDate).Hours() / (24 * 365)
	return &years
}

// DefaultBenchmark maps a peer group to its index when the fund has no
// explicit benchmark assigned.
func DefaultBenchmark(category Category, subcategory string) string {
	switch category {
	case CategoryEquity:
		switch {
		case strings.Contains(subcategory, "Large Cap"):
			return "NIFTY 50"
		case strings.Contains(subcategory, "Mid Cap"):
			return "NIFTY MIDCAP 100"
		case strings.Contains(subcategory, "Small Cap"):
			return "NIFTY SMALLCAP 100"
		default:
			return "NIFTY 500"
		}
	case CategoryDebt:
		switch {
		case strings.Contains(subcategory, "Liquid"):
			return "NIFTY AAA CORPORATE BOND"
		case strings.Contains(subcategory, "Gilt"):
			return "NIFTY 10 YR BENCHMARK G-SEC"
		default:
			return "NIFTY COMPOSITE DEBT"
		}
	default:
		return "NIFTY 50"
	}
}

func (f Fund) Benchmark() string {
	if f.BenchmarkName != "" {
		return f.BenchmarkName
	}
	return DefaultBenchmark(f.Category, f.Subcategory)
}
