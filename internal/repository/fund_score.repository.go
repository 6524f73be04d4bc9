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

type FundScoreListFilter struct {
	ScoreDate   *time.Time
	Category    *domain.Category
	Subcategory *string
}

type FundScoreRepository interface {
	AddMany(ctx context.Context, scores []domain.ScoreRecord) error
	List(ctx context.Context, filter FundScoreListFilter) ([]domain.ScoreRecord, error)
	LatestScoreDate(ctx context.Context) (*time.Time, error)
}

type fundScoreRepositoryHandler struct {
	Db *sql.DB
}

func NewFundScoreRepository(db *sql.DB) FundScoreRepository {
	return fundScoreRepositoryHandler{db}
}

func (h fundScoreRepositoryHandler) AddMany(ctx context.Context, scores []domain.ScoreRecord) error {
	for start := 0; start < len(scores); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(scores) {
			end = len(scores)
		}

		models := make([]model.FundScore, 0, end-start)
		for _, rec := range scores[start:end] {
			models = append(models, fundScoreToModel(rec))
		}

		query := table.FundScore.
			INSERT(table.FundScore.AllColumns).
			MODELS(models).
			ON_CONFLICT(table.FundScore.FundID, table.FundScore.ScoreDate).
			DO_UPDATE(postgres.SET(
				table.FundScore.PeerCategory.SET(table.FundScore.EXCLUDED.PeerCategory),
				table.FundScore.PeerSubcategory.SET(table.FundScore.EXCLUDED.PeerSubcategory),
				table.FundScore.ReturnsTotal.SET(table.FundScore.EXCLUDED.ReturnsTotal),
				table.FundScore.RiskTotal.SET(table.FundScore.EXCLUDED.RiskTotal),
				table.FundScore.FundamentalsTotal.SET(table.FundScore.EXCLUDED.FundamentalsTotal),
				table.FundScore.OtherTotal.SET(table.FundScore.EXCLUDED.OtherTotal),
				table.FundScore.Total.SET(table.FundScore.EXCLUDED.Total),
				table.FundScore.Rank.SET(table.FundScore.EXCLUDED.Rank),
				table.FundScore.GroupSize.SET(table.FundScore.EXCLUDED.GroupSize),
				table.FundScore.Quartile.SET(table.FundScore.EXCLUDED.Quartile),
				table.FundScore.Percentile.SET(table.FundScore.EXCLUDED.Percentile),
				table.FundScore.Recommendation.SET(table.FundScore.EXCLUDED.Recommendation),
			))

		_, err := query.ExecContext(ctx, h.Db)
		if err != nil {
			return fmt.Errorf("failed to add fund scores: %w", err)
		}
	}
	return nil
}

func (h fundScoreRepositoryHandler) List(ctx context.Context, filter FundScoreListFilter) ([]domain.ScoreRecord, error) {
	query := table.FundScore.SELECT(table.FundScore.AllColumns)

	conditions := []postgres.BoolExpression{}
	if filter.ScoreDate != nil {
		conditions = append(conditions, table.FundScore.ScoreDate.EQ(postgres.DateT(*filter.ScoreDate)))
	}
	if filter.Category != nil {
		conditions = append(conditions, table.FundScore.PeerCategory.EQ(postgres.String(string(*filter.Category))))
	}
	if filter.Subcategory != nil {
		conditions = append(conditions, table.FundScore.PeerSubcategory.EQ(postgres.String(*filter.Subcategory)))
	}
	if len(conditions) > 0 {
		query = query.WHERE(postgres.AND(conditions...))
	}
	query = query.ORDER_BY(
		table.FundScore.PeerCategory.ASC(),
		table.FundScore.PeerSubcategory.ASC(),
		table.FundScore.Rank.ASC(),
	)

	out := []model.FundScore{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund scores: %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(out))
	for _, m := range out {
		records = append(records, fundScoreFromModel(m))
	}
	return records, nil
}

func (h fundScoreRepositoryHandler) LatestScoreDate(ctx context.Context) (*time.Time, error) {
	query := table.FundScore.
		SELECT(table.FundScore.ScoreDate).
		ORDER_BY(table.FundScore.ScoreDate.DESC()).
		LIMIT(1)

	out := []model.FundScore{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest score date: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0].ScoreDate, nil
}

func fundScoreToModel(rec domain.ScoreRecord) model.FundScore {
	return model.FundScore{
		FundScoreID:       uuid.New(),
		FundID:            rec.FundID,
		ScoreDate:         rec.ScoreDate,
		PeerCategory:      string(rec.PeerGroup.Category),
		PeerSubcategory:   rec.PeerGroup.Subcategory,
		ReturnsTotal:      rec.ReturnsTotal,
		RiskTotal:         rec.RiskTotal,
		FundamentalsTotal: rec.FundamentalsTotal,
		OtherTotal:        rec.OtherTotal,
		Total:             rec.Total,
		Rank:              int32(rec.Rank),
		GroupSize:         int32(rec.GroupSize),
		Quartile:          int32(rec.Quartile),
		Percentile:        rec.Percentile,
		Recommendation:    string(rec.Recommendation),
		CreatedAt:         time.Now().UTC(),
	}
}

func fundScoreFromModel(m model.FundScore) domain.ScoreRecord {
	return domain.ScoreRecord{
		FundID:    m.FundID,
		ScoreDate: m.ScoreDate,
		PeerGroup: domain.PeerGroupKey{
			Category:    domain.Category(m.PeerCategory),
			Subcategory: m.PeerSubcategory,
		},
		ReturnsTotal:      m.ReturnsTotal,
		RiskTotal:         m.RiskTotal,
		FundamentalsTotal: m.FundamentalsTotal,
		OtherTotal:        m.OtherTotal,
		Total:             m.Total,
		Rank:              int(m.Rank),
		GroupSize:         int(m.GroupSize),
		Quartile:          int(m.Quartile),
		Percentile:        m.Percentile,
		Recommendation:    domain.Recommendation(m.Recommendation),
	}
}
