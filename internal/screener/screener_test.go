package screener

import (
	"testing"
	"time"

	"fundscore/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func rowWith(oneYear, expense *float64, quartile int) Row {
	fund := domain.Fund{
		ID:           uuid.New(),
		SchemeCode:   "118834",
		Category:     domain.CategoryEquity,
		Subcategory:  "Large Cap",
		ExpenseRatio: expense,
	}
	metrics := domain.NewMetricSet(fund.ID, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	metrics.PeriodReturns[domain.Period1Y] = oneYear

	row := Row{Fund: fund, Metrics: metrics}
	if quartile > 0 {
		row.Score = &domain.ScoreRecord{
			FundID:   fund.ID,
			Quartile: quartile,
			Total:    62,
		}
	}
	return row
}

func TestFilter(t *testing.T) {
	t.Run("passes funds matching every clause", func(t *testing.T) {
		rows := []Row{
			rowWith(floatPtr(18), floatPtr(0.5), 1),
			rowWith(floatPtr(8), floatPtr(0.5), 1),
			rowWith(floatPtr(20), floatPtr(2.1), 2),
		}

		out, err := Filter("return1Y() > 12 && expenseRatio() < 1.0", rows)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, rows[0].Fund.ID, out[0].Fund.ID)
	})

	t.Run("missing metric drops the fund, not the screen", func(t *testing.T) {
		rows := []Row{
			rowWith(floatPtr(18), floatPtr(0.5), 1),
			rowWith(nil, floatPtr(0.5), 1),
		}

		out, err := Filter("return1Y() > 12", rows)
		require.NoError(t, err)
		require.Len(t, out, 1)
	})

	t.Run("score functions work when a record is attached", func(t *testing.T) {
		rows := []Row{
			rowWith(floatPtr(18), floatPtr(0.5), 1),
			rowWith(floatPtr(18), floatPtr(0.5), 3),
			rowWith(floatPtr(18), floatPtr(0.5), 0), // unscored
		}

		out, err := Filter("quartile() <= 2 && total() >= 50", rows)
		require.NoError(t, err)
		require.Len(t, out, 1)
	})

	t.Run("string functions compare categories", func(t *testing.T) {
		equity := rowWith(floatPtr(18), nil, 0)
		debt := equity
		debt.Fund.Category = domain.CategoryDebt

		out, err := Filter(`category() == "Equity"`, []Row{equity, debt})
		require.NoError(t, err)
		require.Len(t, out, 1)
	})

	t.Run("malformed expression fails the screen", func(t *testing.T) {
		_, err := Filter("return1Y() >", []Row{rowWith(floatPtr(18), nil, 0)})
		require.ErrorAs(t, err, &domain.InvalidInputError{})
	})

	t.Run("non-boolean result is rejected", func(t *testing.T) {
		_, err := Filter("return1Y() + 2", []Row{rowWith(floatPtr(18), nil, 0)})
		require.ErrorAs(t, err, &domain.InvalidInputError{})
	})

	t.Run("empty expression is rejected", func(t *testing.T) {
		_, err := Filter("", []Row{rowWith(floatPtr(18), nil, 0)})
		require.ErrorAs(t, err, &domain.InvalidInputError{})
	})
}
