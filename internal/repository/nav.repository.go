package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fundscore/internal/db/models/postgres/public/model"
	"fundscore/internal/db/models/postgres/public/table"
	"fundscore/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

type NavRepository interface {
	Add(ctx context.Context, navs []model.NavHistory) error
	List(ctx context.Context, fundID uuid.UUID, start, end time.Time) (domain.NavSeries, error)
	LatestDate(ctx context.Context, fundID uuid.UUID) (*time.Time, error)
}

type navRepositoryHandler struct {
	Db *sql.DB
}

func NewNavRepository(db *sql.DB) NavRepository {
	return navRepositoryHandler{db}
}

// insertChunkSize keeps single statements under the postgres parameter
// limit when seeding multi-year histories.
const insertChunkSize = 1000

func (h navRepositoryHandler) Add(ctx context.Context, navs []model.NavHistory) error {
	for start := 0; start < len(navs); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(navs) {
			end = len(navs)
		}
		chunk := make([]model.NavHistory, end-start)
		copy(chunk, navs[start:end])
		for i := range chunk {
			chunk[i].CreatedAt = time.Now().UTC()
		}

		query := table.NavHistory.
			INSERT(table.NavHistory.AllColumns).
			MODELS(chunk).
			ON_CONFLICT(table.NavHistory.FundID, table.NavHistory.Date).
			DO_UPDATE(postgres.SET(
				table.NavHistory.Nav.SET(table.NavHistory.EXCLUDED.Nav),
			))

		_, err := query.ExecContext(ctx, h.Db)
		if err != nil {
			return fmt.Errorf("failed to add nav history: %w", err)
		}
	}
	return nil
}

func (h navRepositoryHandler) List(ctx context.Context, fundID uuid.UUID, start, end time.Time) (domain.NavSeries, error) {
	query := table.NavHistory.
		SELECT(table.NavHistory.AllColumns).
		WHERE(postgres.AND(
			table.NavHistory.FundID.EQ(postgres.UUID(fundID)),
			table.NavHistory.Date.BETWEEN(postgres.DateT(start), postgres.DateT(end)),
		)).
		ORDER_BY(table.NavHistory.Date.ASC())

	out := []model.NavHistory{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list nav history for %s: %w", fundID.String(), err)
	}

	series := make(domain.NavSeries, 0, len(out))
	for _, m := range out {
		series = append(series, domain.NavPoint{
			FundID: m.FundID,
			Date:   m.Date,
			Nav:    m.Nav,
		})
	}
	return series, nil
}

func (h navRepositoryHandler) LatestDate(ctx context.Context, fundID uuid.UUID) (*time.Time, error) {
	query := table.NavHistory.
		SELECT(table.NavHistory.Date).
		WHERE(table.NavHistory.FundID.EQ(postgres.UUID(fundID))).
		ORDER_BY(table.NavHistory.Date.DESC()).
		LIMIT(1)

	out := []model.NavHistory{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest nav date for %s: %w", fundID.String(), err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0].Date, nil
}
