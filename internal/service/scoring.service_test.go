package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundscore/internal/calculator"
	"fundscore/internal/domain"
	mock_repository "fundscore/internal/repository/mocks"
	"fundscore/internal/scorer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func denseSeries(fundID uuid.UUID, asOf time.Time, days int, up, down float64) domain.NavSeries {
	series := domain.NavSeries{}
	nav := 100.0
	for i := days; i >= 0; i-- {
		if i < days {
			if i%2 == 0 {
				nav *= up
			} else {
				nav *= down
			}
		}
		series = append(series, domain.NavPoint{
			FundID: fundID,
			Date:   asOf.AddDate(0, 0, -i),
			Nav:    decimal.NewFromFloat(nav),
		})
	}
	series.Sort()
	return series
}

func equityFund(name string) domain.Fund {
	return domain.Fund{
		ID:          uuid.New(),
		SchemeCode:  name,
		Name:        name,
		Category:    domain.CategoryEquity,
		Subcategory: "Large Cap",
	}
}

func newTestHandler(t *testing.T) (scoringServiceHandler, *mock_repository.MockFundRepository, *mock_repository.MockNavRepository, *mock_repository.MockBenchmarkRepository, *mock_repository.MockFundScoreRepository, *mock_repository.MockScoringRunRepository) {
	ctrl := gomock.NewController(t)
	fundRepo := mock_repository.NewMockFundRepository(ctrl)
	navRepo := mock_repository.NewMockNavRepository(ctrl)
	benchmarkRepo := mock_repository.NewMockBenchmarkRepository(ctrl)
	scoreRepo := mock_repository.NewMockFundScoreRepository(ctrl)
	runRepo := mock_repository.NewMockScoringRunRepository(ctrl)

	handler := scoringServiceHandler{
		FundRepository:       fundRepo,
		NavRepository:        navRepo,
		BenchmarkRepository:  benchmarkRepo,
		FundScoreRepository:  scoreRepo,
		ScoringRunRepository: runRepo,
		Calculator:           calculator.NewService(),
		Scorer:               scorer.New(scorer.DefaultConfig()),
		NumWorkers:           2,
		MaxRetries:           0,
	}
	return handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, runRepo
}

func Test_scoringServiceHandler_ScoreBatch(t *testing.T) {
	asOf := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	t.Run("scores and ranks every fund in the group", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, runRepo := newTestHandler(t)

		funds := []domain.Fund{equityFund("100001"), equityFund("100002"), equityFund("100003")}
		seriesByFund := map[uuid.UUID]domain.NavSeries{
			funds[0].ID: denseSeries(funds[0].ID, asOf, 400, 1.0025, 0.999),
			funds[1].ID: denseSeries(funds[1].ID, asOf, 400, 1.002, 0.999),
			funds[2].ID: denseSeries(funds[2].ID, asOf, 400, 1.0015, 0.999),
		}

		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(funds, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fundID uuid.UUID, _, _ time.Time) (domain.NavSeries, error) {
				return seriesByFund[fundID], nil
			}).Times(3)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil).Times(3)

		var persisted []domain.ScoreRecord
		scoreRepo.EXPECT().AddMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, records []domain.ScoreRecord) error {
				persisted = records
				return nil
			})
		runRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := handler.ScoreBatch(context.Background(), asOf)
		require.NoError(t, err)

		require.Equal(t, 3, summary.Scored)
		require.Empty(t, summary.Skipped)
		require.Empty(t, summary.Failed)
		require.False(t, summary.Cancelled)

		require.Len(t, persisted, 3)
		for i, rec := range persisted {
			require.Equal(t, i+1, rec.Rank)
			require.Equal(t, 3, rec.GroupSize)
			require.Equal(t, asOf, rec.ScoreDate)
			require.NotEmpty(t, rec.Recommendation)
		}
	})

	t.Run("thin histories are skipped, not failed", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, runRepo := newTestHandler(t)

		good := equityFund("100001")
		thin := equityFund("100002")
		seriesByFund := map[uuid.UUID]domain.NavSeries{
			good.ID: denseSeries(good.ID, asOf, 400, 1.002, 0.999),
			thin.ID: denseSeries(thin.ID, asOf, 5, 1.002, 0.999),
		}

		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Fund{good, thin}, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fundID uuid.UUID, _, _ time.Time) (domain.NavSeries, error) {
				return seriesByFund[fundID], nil
			}).Times(2)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil)

		scoreRepo.EXPECT().AddMany(gomock.Any(), gomock.Len(1)).Return(nil)
		runRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := handler.ScoreBatch(context.Background(), asOf)
		require.NoError(t, err)

		require.Equal(t, 1, summary.Scored)
		require.Equal(t, []uuid.UUID{thin.ID}, summary.Skipped)
		require.Empty(t, summary.Failed)
	})

	t.Run("one fund's upstream failure never aborts the others", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, runRepo := newTestHandler(t)

		good := equityFund("100001")
		broken := equityFund("100002")
		goodSeries := denseSeries(good.ID, asOf, 400, 1.002, 0.999)

		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Fund{good, broken}, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fundID uuid.UUID, _, _ time.Time) (domain.NavSeries, error) {
				if fundID == broken.ID {
					return nil, errors.New("connection reset")
				}
				return goodSeries, nil
			}).Times(2)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil)

		scoreRepo.EXPECT().AddMany(gomock.Any(), gomock.Len(1)).Return(nil)
		runRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

		summary, err := handler.ScoreBatch(context.Background(), asOf)
		require.NoError(t, err)

		require.Equal(t, 1, summary.Scored)
		require.Len(t, summary.Failed, 1)
		require.Equal(t, broken.ID, summary.Failed[0].FundID)
		require.Contains(t, summary.Failed[0].Err, "connection reset")
	})

	t.Run("cancelled run writes nothing and reports cancellation", func(t *testing.T) {
		handler, fundRepo, navRepo, _, _, runRepo := newTestHandler(t)

		funds := []domain.Fund{equityFund("100001"), equityFund("100002")}
		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(funds, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.NavSeries{}, nil).AnyTimes()
		runRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary, err := handler.ScoreBatch(ctx, asOf)
		require.NoError(t, err)

		require.True(t, summary.Cancelled)
		require.Equal(t, 0, summary.Scored)
		require.Empty(t, summary.Failed)
	})
}

func Test_scoringServiceHandler_ComputeMetrics(t *testing.T) {
	asOf := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	t.Run("short histories yield an all-absent metric set, not an error", func(t *testing.T) {
		handler, fundRepo, navRepo, _, _, _ := newTestHandler(t)

		fund := equityFund("100001")
		fundRepo.EXPECT().Get(gomock.Any(), fund.ID).Return(&fund, nil)
		navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), gomock.Any()).
			Return(denseSeries(fund.ID, asOf, 10, 1.002, 0.999), nil)

		metrics, err := handler.ComputeMetrics(context.Background(), fund.ID, asOf)
		require.NoError(t, err)
		require.Equal(t, fund.ID, metrics.FundID)
		require.True(t, metrics.Empty())
	})

	t.Run("retries transient nav reads before giving up", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, _, _ := newTestHandler(t)
		handler.MaxRetries = 1

		fund := equityFund("100001")
		series := denseSeries(fund.ID, asOf, 400, 1.002, 0.999)

		fundRepo.EXPECT().Get(gomock.Any(), fund.ID).Return(&fund, nil)
		gomock.InOrder(
			navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), gomock.Any()).
				Return(nil, errors.New("timeout")),
			navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), gomock.Any()).
				Return(series, nil),
		)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil)

		metrics, err := handler.ComputeMetrics(context.Background(), fund.ID, asOf)
		require.NoError(t, err)
		require.NotNil(t, metrics.PeriodReturn(domain.Period1Y))
	})

	t.Run("wraps persistent failures as upstream errors", func(t *testing.T) {
		handler, fundRepo, navRepo, _, _, _ := newTestHandler(t)

		fund := equityFund("100001")
		fundRepo.EXPECT().Get(gomock.Any(), fund.ID).Return(&fund, nil)
		navRepo.EXPECT().List(gomock.Any(), fund.ID, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := handler.ComputeMetrics(context.Background(), fund.ID, asOf)

		var upstream domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
		require.Equal(t, "list nav history", upstream.Op)
	})
}

func Test_scoringServiceHandler_ComputeScore(t *testing.T) {
	asOf := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	t.Run("ranks and persists the whole peer group", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, _ := newTestHandler(t)

		target := equityFund("100001")
		peer := equityFund("100002")
		seriesByFund := map[uuid.UUID]domain.NavSeries{
			target.ID: denseSeries(target.ID, asOf, 400, 1.0025, 0.999),
			peer.ID:   denseSeries(peer.ID, asOf, 400, 1.0015, 0.999),
		}

		fundRepo.EXPECT().Get(gomock.Any(), target.ID).Return(&target, nil)
		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Fund{target, peer}, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fundID uuid.UUID, _, _ time.Time) (domain.NavSeries, error) {
				return seriesByFund[fundID], nil
			}).Times(2)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil).Times(2)

		var persisted []domain.ScoreRecord
		scoreRepo.EXPECT().AddMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, records []domain.ScoreRecord) error {
				persisted = records
				return nil
			})

		record, err := handler.ComputeScore(context.Background(), target.ID, asOf)
		require.NoError(t, err)

		require.Equal(t, target.ID, record.FundID)
		require.Equal(t, target.PeerGroup(), record.PeerGroup)
		require.Greater(t, record.Total, 0.0)
		require.Equal(t, 1, record.Rank)
		require.Equal(t, 2, record.GroupSize)
		require.Len(t, persisted, 2)
	})

	t.Run("thin history scores from attributes alone, unranked", func(t *testing.T) {
		handler, fundRepo, navRepo, benchmarkRepo, scoreRepo, _ := newTestHandler(t)

		expense := 0.8
		exitLoad := 0.0
		aum := 5000.0
		target := equityFund("100001")
		target.ExpenseRatio = &expense
		target.ExitLoad = &exitLoad
		target.AumCrores = &aum
		peer := equityFund("100002")
		seriesByFund := map[uuid.UUID]domain.NavSeries{
			target.ID: denseSeries(target.ID, asOf, 10, 1.002, 0.999),
			peer.ID:   denseSeries(peer.ID, asOf, 400, 1.0015, 0.999),
		}

		fundRepo.EXPECT().Get(gomock.Any(), target.ID).Return(&target, nil)
		fundRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Fund{target, peer}, nil)
		navRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fundID uuid.UUID, _, _ time.Time) (domain.NavSeries, error) {
				return seriesByFund[fundID], nil
			}).Times(2)
		benchmarkRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.BenchmarkPoint{}, nil)

		var persisted []domain.ScoreRecord
		scoreRepo.EXPECT().AddMany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, records []domain.ScoreRecord) error {
				persisted = records
				return nil
			})

		record, err := handler.ComputeScore(context.Background(), target.ID, asOf)
		require.NoError(t, err)

		require.Zero(t, record.ReturnsTotal)
		require.Zero(t, record.RiskTotal)
		require.Greater(t, record.FundamentalsTotal, 0.0)
		require.Greater(t, record.OtherTotal, 0.0)
		require.Equal(t, record.FundamentalsTotal+record.OtherTotal, record.Total)
		require.Zero(t, record.Rank)
		require.NotEmpty(t, record.Recommendation)
		require.Len(t, persisted, 2)
	})
}
