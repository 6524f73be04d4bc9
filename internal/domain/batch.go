package domain

import (
	"time"

	"github.com/google/uuid"
)

// BatchItemFailure records one fund that could not be scored. Failures
// are isolated per fund; they never abort the sibling computations.
type BatchItemFailure struct {
	FundID uuid.UUID
	Err    string
}

// BatchSummary reports the outcome of a bulk scoring pass. A cancelled
// run leaves a well-defined prefix of updated records; Cancelled marks
// that the remaining funds were never attempted.
type BatchSummary struct {
	RunID     uuid.UUID
	ScoreDate time.Time

	Scored    int
	Skipped   []uuid.UUID // insufficient data, no record written
	Failed    []BatchItemFailure
	Cancelled bool

	StartedAt time.Time
	ElapsedMs int64
}
