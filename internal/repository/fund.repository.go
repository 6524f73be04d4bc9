package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fundscore/internal/db/models/postgres/public/model"
	"fundscore/internal/db/models/postgres/public/table"
	"fundscore/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type FundListFilter struct {
	Category    *domain.Category
	Subcategory *string
}

type FundRepository interface {
	Add(ctx context.Context, f model.Fund) (*domain.Fund, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Fund, error)
	GetBySchemeCode(ctx context.Context, schemeCode string) (*domain.Fund, error)
	List(ctx context.Context, filter FundListFilter) ([]domain.Fund, error)
}

type fundRepositoryHandler struct {
	Db *sql.DB
}

func NewFundRepository(db *sql.DB) FundRepository {
	return fundRepositoryHandler{db}
}

func (h fundRepositoryHandler) Add(ctx context.Context, f model.Fund) (*domain.Fund, error) {
	if f.FundID == uuid.Nil {
		f.FundID = uuid.New()
	}
	f.CreatedAt = time.Now().UTC()
	f.ModifiedAt = time.Now().UTC()

	query := table.Fund.
		INSERT(table.Fund.AllColumns).
		MODEL(f).
		ON_CONFLICT(table.Fund.SchemeCode).
		DO_UPDATE(postgres.SET(
			table.Fund.Name.SET(table.Fund.EXCLUDED.Name),
			table.Fund.Category.SET(table.Fund.EXCLUDED.Category),
			table.Fund.Subcategory.SET(table.Fund.EXCLUDED.Subcategory),
			table.Fund.BenchmarkName.SET(table.Fund.EXCLUDED.BenchmarkName),
			table.Fund.ExpenseRatio.SET(table.Fund.EXCLUDED.ExpenseRatio),
			table.Fund.InceptionDate.SET(table.Fund.EXCLUDED.InceptionDate),
			table.Fund.MinInvestment.SET(table.Fund.EXCLUDED.MinInvestment),
			table.Fund.ExitLoad.SET(table.Fund.EXCLUDED.ExitLoad),
			table.Fund.AumCrores.SET(table.Fund.EXCLUDED.AumCrores),
			table.Fund.ModifiedAt.SET(table.Fund.EXCLUDED.ModifiedAt),
		)).
		RETURNING(table.Fund.AllColumns)

	out := model.Fund{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to add fund %s: %w", f.SchemeCode, err)
	}

	fund := fundFromModel(out)
	return &fund, nil
}

func (h fundRepositoryHandler) Get(ctx context.Context, id uuid.UUID) (*domain.Fund, error) {
	query := table.Fund.
		SELECT(table.Fund.AllColumns).
		WHERE(table.Fund.FundID.EQ(postgres.UUID(id)))

	out := model.Fund{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("fund %s not found: %w", id.String(), err)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get fund %s: %w", id.String(), err)
	}

	fund := fundFromModel(out)
	return &fund, nil
}

func (h fundRepositoryHandler) GetBySchemeCode(ctx context.Context, schemeCode string) (*domain.Fund, error) {
	query := table.Fund.
		SELECT(table.Fund.AllColumns).
		WHERE(table.Fund.SchemeCode.EQ(postgres.String(schemeCode)))

	out := model.Fund{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund with scheme code %s: %w", schemeCode, err)
	}

	fund := fundFromModel(out)
	return &fund, nil
}

func (h fundRepositoryHandler) List(ctx context.Context, filter FundListFilter) ([]domain.Fund, error) {
	query := table.Fund.SELECT(table.Fund.AllColumns)

	conditions := []postgres.BoolExpression{}
	if filter.Category != nil {
		conditions = append(conditions, table.Fund.Category.EQ(postgres.String(string(*filter.Category))))
	}
	if filter.Subcategory != nil {
		conditions = append(conditions, table.Fund.Subcategory.EQ(postgres.String(*filter.Subcategory)))
	}
	if len(conditions) > 0 {
		query = query.WHERE(postgres.AND(conditions...))
	}
	query = query.ORDER_BY(table.Fund.SchemeCode.ASC())

	out := []model.Fund{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}

	funds := make([]domain.Fund, 0, len(out))
	for _, m := range out {
		funds = append(funds, fundFromModel(m))
	}
	return funds, nil
}

func fundFromModel(m model.Fund) domain.Fund {
	benchmarkName := ""
	if m.BenchmarkName != nil {
		benchmarkName = *m.BenchmarkName
	}
	return domain.Fund{
		ID:            m.FundID,
		SchemeCode:    m.SchemeCode,
		Name:          m.Name,
		Category:      domain.Category(m.Category),
		Subcategory:   m.Subcategory,
		BenchmarkName: benchmarkName,
		ExpenseRatio:  m.ExpenseRatio,
		InceptionDate: m.InceptionDate,
		MinInvestment: m.MinInvestment,
		ExitLoad:      m.ExitLoad,
		AumCrores:     m.AumCrores,
	}
}
