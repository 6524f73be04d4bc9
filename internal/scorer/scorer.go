package scorer

import (
	"math"
	"sort"
	"time"

	"fundscore/internal/domain"
)

// PeerDistribution holds each peer group's period returns, sorted
// ascending, for percentile-based return scoring. Built once per
// scoring pass after all metrics are computed.
type PeerDistribution map[domain.Period][]float64

// NewPeerDistribution collects the available period returns from a
// cohort's metric sets. Absent returns simply don't enter the sample.
func NewPeerDistribution(sets []domain.MetricSet) PeerDistribution {
	dist := PeerDistribution{}
	for _, m := range sets {
		for period, ret := range m.PeriodReturns {
			if ret != nil {
				dist[period] = append(dist[period], *ret)
			}
		}
	}
	for period := range dist {
		sort.Float64s(dist[period])
	}
	return dist
}

// percentileOf returns the percent of sample values at or below v.
func percentileOf(sample []float64, v float64) float64 {
	n := sort.SearchFloat64s(sample, math.Nextafter(v, math.Inf(1)))
	return float64(n) / float64(len(sample)) * 100
}

// Scorer maps a MetricSet plus static fund attributes into bounded
// sub-scores. It never infers a missing sub-score from the others, and
// an absent input contributes exactly zero - not a neutral placeholder.
type Scorer struct {
	cfg Config
}

func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score produces the sub-score portion of a ScoreRecord. Peer quartile
// and recommendation are left for the ranking pass. Pass a nil peers
// distribution to fall back to absolute return breakpoints (ad-hoc
// single fund scoring).
func (s *Scorer) Score(fund domain.Fund, metrics domain.MetricSet, peers PeerDistribution, scoreDate time.Time) domain.ScoreRecord {
	rec := domain.ScoreRecord{
		FundID:    fund.ID,
		ScoreDate: scoreDate,
		PeerGroup: fund.PeerGroup(),
	}

	rec.ReturnsTotal = s.returnsSubScore(metrics, peers)
	rec.RiskTotal = s.riskSubScore(metrics)
	rec.FundamentalsTotal = s.fundamentalsSubScore(fund, scoreDate)
	rec.OtherTotal = s.otherSubScore(fund)

	rec.Total = math.Min(
		rec.ReturnsTotal+rec.RiskTotal+rec.FundamentalsTotal+rec.OtherTotal,
		s.cfg.ReturnsMax+s.cfg.RiskMax+s.cfg.FundamentalsMax+s.cfg.OtherMax,
	)
	return rec
}

// returnsSubScore sums per-period contributions. With a peer
// distribution each period is banded by percentile rank (top 5% full
// points, bottom 10% zero, deciles between) - self-normalizing across
// market regimes where fixed thresholds drift. An absent period return
// contributes zero.
func (s *Scorer) returnsSubScore(metrics domain.MetricSet, peers PeerDistribution) float64 {
	total := 0.0
	for period, weight := range s.cfg.PeriodWeights {
		ret := metrics.PeriodReturn(period)
		if ret == nil {
			continue
		}
		if sample, ok := peers[period]; ok && len(sample) >= minPeerSample {
			total += weight * percentileFraction(percentileOf(sample, *ret))
		} else {
			total += weight * s.breakpointFraction(*ret)
		}
	}
	return math.Min(total, s.cfg.ReturnsMax)
}

// minPeerSample guards percentile banding against tiny cohorts, where
// a single fund would swing whole deciles.
const minPeerSample = 5

func percentileFraction(pct float64) float64 {
	switch {
	case pct >= 95:
		return 1.0
	case pct >= 90:
		return 0.9
	case pct >= 80:
		return 0.8
	case pct >= 70:
		return 0.7
	case pct >= 60:
		return 0.6
	case pct >= 50:
		return 0.5
	case pct >= 40:
		return 0.4
	case pct >= 30:
		return 0.3
	case pct >= 20:
		return 0.2
	case pct >= 10:
		return 0.1
	}
	return 0
}

func (s *Scorer) breakpointFraction(ret float64) float64 {
	for _, bp := range s.cfg.ReturnBreakpoints {
		if ret >= bp.MinReturn {
			return bp.Fraction
		}
	}
	return 0
}

// riskSubScore combines volatility, Sharpe, drawdown and beta through
// threshold bands. Each absent input contributes zero and the total is
// NOT renormalized - a fund with partial risk data loses only the
// missing component's weight.
func (s *Scorer) riskSubScore(metrics domain.MetricSet) float64 {
	total := 0.0

	if v := metrics.Volatility; v != nil {
		switch {
		case *v <= 10:
			total += 8
		case *v <= 15:
			total += 6
		case *v <= 20:
			total += 4
		case *v <= 30:
			total += 2
		}
	}

	if sh := metrics.Sharpe; sh != nil {
		switch {
		case *sh >= 1.5:
			total += 8
		case *sh >= 1.0:
			total += 6
		case *sh >= 0.5:
			total += 4
		case *sh >= 0:
			total += 2
		}
	}

	if dd := metrics.MaxDrawdown; dd != nil {
		switch {
		case *dd <= 10:
			total += 7
		case *dd <= 20:
			total += 5
		case *dd <= 35:
			total += 3
		default:
			total += 1
		}
	}

	if b := metrics.Beta; b != nil {
		switch {
		case *b >= 0.85 && *b <= 1.15:
			total += 7
		case *b >= 0.6 && *b <= 1.4:
			total += 5
		case *b > 0:
			total += 2
		}
	}

	return math.Min(total, s.cfg.RiskMax)
}

// fundamentalsSubScore scores static attributes: cheaper expense ratio,
// longer track record, lower entry minimum, low exit load. Unknown
// attributes contribute zero.
func (s *Scorer) fundamentalsSubScore(fund domain.Fund, asOf time.Time) float64 {
	total := 0.0

	if er := fund.ExpenseRatio; er != nil {
		switch {
		case *er <= 0.5:
			total += 5
		case *er <= 1.0:
			total += 4
		case *er <= 1.5:
			total += 3
		case *er <= 2.0:
			total += 2
		default:
			total += 1
		}
	}

	if years := fund.TrackRecordYears(asOf); years != nil {
		switch {
		case *years >= 10:
			total += 4
		case *years >= 5:
			total += 3
		case *years >= 3:
			total += 2
		case *years >= 1:
			total += 1
		}
	}

	if mi := fund.MinInvestment; mi != nil {
		switch {
		case *mi <= 500:
			total += 3
		case *mi <= 5000:
			total += 2
		default:
			total += 1
		}
	}

	if el := fund.ExitLoad; el != nil {
		switch {
		case *el == 0:
			total += 3
		case *el <= 1:
			total += 2
		default:
			total += 1
		}
	}

	return math.Min(total, s.cfg.FundamentalsMax)
}

// otherSubScore covers best-effort signals - AUM scale and a
// category-specific maturity bonus. Missing data contributes zero.
func (s *Scorer) otherSubScore(fund domain.Fund) float64 {
	total := 0.0

	if aum := fund.AumCrores; aum != nil {
		switch {
		case *aum >= 10000:
			total += 8
		case *aum >= 2500:
			total += 6
		case *aum >= 500:
			total += 4
		case *aum >= 100:
			total += 2
		}
	}

	// liquid/gilt books get steadier with scale; equity funds get a
	// smaller bonus since very large books drag small cap agility
	if fund.AumCrores != nil {
		switch fund.Category {
		case domain.CategoryDebt:
			total += 4
		case domain.CategoryHybrid:
			total += 3
		case domain.CategoryEquity:
			total += 2
		}
	}

	return math.Min(total, s.cfg.OtherMax)
}
