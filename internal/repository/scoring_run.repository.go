package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fundscore/internal/db/models/postgres/public/model"
	"fundscore/internal/db/models/postgres/public/table"
	"fundscore/internal/domain"
)

// ScoringRunRepository records one audit row per batch scoring run.
type ScoringRunRepository interface {
	Add(ctx context.Context, summary domain.BatchSummary) error
}

type scoringRunRepositoryHandler struct {
	Db *sql.DB
}

func NewScoringRunRepository(db *sql.DB) ScoringRunRepository {
	return scoringRunRepositoryHandler{db}
}

func (h scoringRunRepositoryHandler) Add(ctx context.Context, summary domain.BatchSummary) error {
	m := model.ScoringRun{
		ScoringRunID: summary.RunID,
		ScoreDate:    summary.ScoreDate,
		NumScored:    int32(summary.Scored),
		NumSkipped:   int32(len(summary.Skipped)),
		NumFailed:    int32(len(summary.Failed)),
		Cancelled:    summary.Cancelled,
		StartedAt:    summary.StartedAt,
		ElapsedMs:    summary.ElapsedMs,
		CreatedAt:    time.Now().UTC(),
	}

	query := table.ScoringRun.
		INSERT(table.ScoringRun.AllColumns).
		MODEL(m)

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return fmt.Errorf("failed to add scoring run %s: %w", summary.RunID.String(), err)
	}
	return nil
}
