package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundscore/internal/domain"
	mock_repository "fundscore/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_backtestServiceHandler_Run(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	newHandler := func(t *testing.T) (backtestServiceHandler, *mock_repository.MockFundRepository, *mock_repository.MockNavRepository, *mock_repository.MockBenchmarkRepository) {
		ctrl := gomock.NewController(t)
		fundRepo := mock_repository.NewMockFundRepository(ctrl)
		navRepo := mock_repository.NewMockNavRepository(ctrl)
		benchmarkRepo := mock_repository.NewMockBenchmarkRepository(ctrl)

		handler := backtestServiceHandler{
			FundRepository:      fundRepo,
			NavRepository:       navRepo,
			BenchmarkRepository: benchmarkRepo,
			MaxRetries:          0,
			RiskFreeRate:        0.065,
		}
		return handler, fundRepo, navRepo, benchmarkRepo
	}

	flatSeries := func(fundID uuid.UUID, startNav, endNav float64) domain.NavSeries {
		return domain.NavSeries{
			{FundID: fundID, Date: start, Nav: decimal.NewFromFloat(startNav)},
			{FundID: fundID, Date: end, Nav: decimal.NewFromFloat(endNav)},
		}
	}

	t.Run("runs a simulation over fetched nav histories", func(t *testing.T) {
		handler, fundRepo, navRepo, _ := newHandler(t)

		fund := equityFund("100001")
		fundRepo.EXPECT().Get(gomock.Any(), fund.ID).Return(&fund, nil)
		navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), end).
			Return(flatSeries(fund.ID, 100, 110), nil)

		result, err := handler.Run(context.Background(), BacktestRequest{
			Allocation:    domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fund.ID, Weight: 1.0}}},
			Start:         start,
			End:           end,
			InitialAmount: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)

		require.InDelta(t, 10.0, result.Summary.TotalReturn, 0.001)
		require.Nil(t, result.Summary.Beta)
	})

	t.Run("rejects invalid allocations before touching storage", func(t *testing.T) {
		handler, _, _, _ := newHandler(t)

		_, err := handler.Run(context.Background(), BacktestRequest{
			Allocation:    domain.Allocation{Entries: []domain.AllocationEntry{{FundID: uuid.New(), Weight: 0.5}}},
			Start:         start,
			End:           end,
			InitialAmount: decimal.NewFromInt(1000),
		})
		require.ErrorAs(t, err, &domain.InvalidInputError{})
	})

	t.Run("unknown fund surfaces as a lookup error", func(t *testing.T) {
		handler, fundRepo, _, _ := newHandler(t)

		missing := uuid.New()
		fundRepo.EXPECT().Get(gomock.Any(), missing).Return(nil, errors.New("fund not found"))

		_, err := handler.Run(context.Background(), BacktestRequest{
			Allocation:    domain.Allocation{Entries: []domain.AllocationEntry{{FundID: missing, Weight: 1.0}}},
			Start:         start,
			End:           end,
			InitialAmount: decimal.NewFromInt(1000),
		})
		require.ErrorContains(t, err, "not found")
	})

	t.Run("falls back to absolute-only when the benchmark read fails", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo := newHandler(t)

		fund := equityFund("100001")
		benchmarkName := "NIFTY 50"

		fundRepo.EXPECT().Get(gomock.Any(), fund.ID).Return(&fund, nil)
		navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), end).
			Return(flatSeries(fund.ID, 100, 110), nil)
		benchmarkRepo.EXPECT().List(gomock.Any(), benchmarkName, gomock.Any(), end).
			Return(nil, errors.New("connection refused"))

		result, err := handler.Run(context.Background(), BacktestRequest{
			Allocation:    domain.Allocation{Entries: []domain.AllocationEntry{{FundID: fund.ID, Weight: 1.0}}},
			Start:         start,
			End:           end,
			InitialAmount: decimal.NewFromInt(1000),
			BenchmarkName: &benchmarkName,
		})
		require.NoError(t, err)

		require.InDelta(t, 10.0, result.Summary.TotalReturn, 0.001)
		require.Nil(t, result.Summary.Beta)
		require.Nil(t, result.Summary.Alpha)
	})
}
