package calculator

import (
	"time"

	"fundscore/internal/domain"
)

// periodSpec defines one named lookback window. A period return is only
// computed when an observation lands within toleranceDays of the target
// lookback date - the tolerance widens for longer periods to cope with
// sparse history.
type periodSpec struct {
	period        domain.Period
	lookbackDays  int
	toleranceDays int
	annualize     bool
}

var periodSpecs = []periodSpec{
	{period: domain.Period3M, lookbackDays: 91, toleranceDays: 15},
	{period: domain.Period6M, lookbackDays: 182, toleranceDays: 20},
	{period: domain.Period1Y, lookbackDays: 365, toleranceDays: 30},
	{period: domain.Period3Y, lookbackDays: 1095, toleranceDays: 90, annualize: true},
	{period: domain.Period5Y, lookbackDays: 1825, toleranceDays: 150, annualize: true},
}

const ytdToleranceDays = 45

// ytdTarget is Jan 1 of the as-of year.
func ytdTarget(asOf time.Time) time.Time {
	return time.Date(asOf.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}
