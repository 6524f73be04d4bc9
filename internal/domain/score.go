package domain

import (
	"time"

	"github.com/google/uuid"
)

type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// ScoreRecord is the stored scoring outcome for one fund on one score
// date. Sub-scores and total are owned by the scorer; rank, quartile,
// percentile and recommendation are filled in by the ranking pass.
// Recomputing for the same (fund, score date) overwrites deterministically.
type ScoreRecord struct {
	FundID    uuid.UUID
	ScoreDate time.Time
	PeerGroup PeerGroupKey

	ReturnsTotal      float64
	RiskTotal         float64
	FundamentalsTotal float64
	OtherTotal        float64
	Total             float64

	Rank           int
	GroupSize      int
	Quartile       int
	Percentile     float64
	Recommendation Recommendation
}
