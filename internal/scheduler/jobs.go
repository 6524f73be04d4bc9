package scheduler

import (
	"context"
	"fmt"
	"time"

	"fundscore/internal/logger"
	"fundscore/internal/service"
)

// DailyScoringJob recomputes and persists all fund scores once a day,
// after the previous day's NAVs have been published.
type DailyScoringJob struct {
	ScoringService service.ScoringService
	CronSpec       string
	Timeout        time.Duration
}

func NewDailyScoringJob(scoringService service.ScoringService) DailyScoringJob {
	return DailyScoringJob{
		ScoringService: scoringService,
		CronSpec:       "30 1 * * *",
		Timeout:        2 * time.Hour,
	}
}

func (j DailyScoringJob) Name() string {
	return "daily-scoring"
}

func (j DailyScoringJob) Schedule() string {
	return j.CronSpec
}

func (j DailyScoringJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	summary, err := j.ScoringService.ScoreBatch(ctx, asOf)
	if err != nil {
		return fmt.Errorf("daily scoring failed: %w", err)
	}
	if summary.Cancelled {
		return fmt.Errorf("daily scoring timed out after %d funds", summary.Scored)
	}
	if len(summary.Failed) > 0 {
		log.Warnw("daily scoring finished with failures",
			"scored", summary.Scored,
			"skipped", len(summary.Skipped),
			"failed", len(summary.Failed),
		)
	}
	return nil
}
