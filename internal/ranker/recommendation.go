package ranker

import "fundscore/internal/domain"

// Recommend classifies a ranked record into a recommendation label.
// Rules are evaluated top-down, most restrictive first, so a strong
// fund can never satisfy a lower tier before the higher one is
// checked. Within a fixed quartile and risk score, a higher composite
// total never yields a worse label.
func Recommend(rec domain.ScoreRecord) domain.Recommendation {
	switch {
	case rec.Total >= 70:
		return domain.StrongBuy
	case rec.Total >= 65 && rec.Quartile == 1 && rec.RiskTotal >= 25:
		return domain.StrongBuy
	case rec.Total >= 55:
		return domain.Buy
	case rec.Total >= 50 && rec.Quartile <= 2:
		return domain.Buy
	case rec.Total >= 40:
		return domain.Hold
	case rec.Total >= 35 && rec.Quartile <= 3:
		return domain.Hold
	case rec.Total >= 25:
		return domain.Sell
	}
	return domain.StrongSell
}
