package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/logger"
	"fundscore/internal/repository"
	"fundscore/internal/screener"

	"github.com/google/uuid"
)

type ScreenerService interface {
	Screen(ctx context.Context, expression string, asOf time.Time) ([]screener.Row, error)
}

type screenerServiceHandler struct {
	FundRepository      repository.FundRepository
	FundScoreRepository repository.FundScoreRepository
	ScoringService      ScoringService

	NumWorkers int
}

func NewScreenerService(
	fundRepository repository.FundRepository,
	fundScoreRepository repository.FundScoreRepository,
	scoringService ScoringService,
) ScreenerService {
	return screenerServiceHandler{
		FundRepository:      fundRepository,
		FundScoreRepository: fundScoreRepository,
		ScoringService:      scoringService,
		NumWorkers:          10,
	}
}

// Screen evaluates the expression against every fund with enough
// history to carry metrics. The latest persisted scores are attached
// so score-based clauses (quartile, total, recommendation) resolve.
func (h screenerServiceHandler) Screen(ctx context.Context, expression string, asOf time.Time) ([]screener.Row, error) {
	// validate syntax cheaply before doing any metric work
	if _, err := screener.Evaluate(expression, screener.Row{}); err != nil {
		var invalid domain.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, err
		}
	}

	funds, err := h.FundRepository.List(ctx, repository.FundListFilter{})
	if err != nil {
		return nil, err
	}

	scoresByFund, err := h.latestScores(ctx)
	if err != nil {
		logger.FromContext(ctx).Warnf("screening without score records: %v", err)
	}

	rows := h.buildRows(ctx, funds, scoresByFund, asOf)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return screener.Filter(expression, rows)
}

func (h screenerServiceHandler) latestScores(ctx context.Context) (map[uuid.UUID]domain.ScoreRecord, error) {
	scoreDate, err := h.FundScoreRepository.LatestScoreDate(ctx)
	if err != nil {
		return nil, err
	}
	if scoreDate == nil {
		return nil, nil
	}

	records, err := h.FundScoreRepository.List(ctx, repository.FundScoreListFilter{ScoreDate: scoreDate})
	if err != nil {
		return nil, err
	}

	out := map[uuid.UUID]domain.ScoreRecord{}
	for _, rec := range records {
		out[rec.FundID] = rec
	}
	return out, nil
}

func (h screenerServiceHandler) buildRows(ctx context.Context, funds []domain.Fund, scoresByFund map[uuid.UUID]domain.ScoreRecord, asOf time.Time) []screener.Row {
	inputCh := make(chan domain.Fund, len(funds))
	resultCh := make(chan *screener.Row, len(funds))

	var wg sync.WaitGroup
	for _, fund := range funds {
		wg.Add(1)
		inputCh <- fund
	}
	close(inputCh)

	numGoroutines := h.NumWorkers
	if numGoroutines < 1 {
		numGoroutines = 1
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for fund := range inputCh {
				if ctx.Err() != nil {
					resultCh <- nil
					wg.Done()
					continue
				}

				metrics, err := h.ScoringService.ComputeMetrics(ctx, fund.ID, asOf)
				if err != nil {
					// funds without metrics can still match attribute-only screens
					empty := domain.NewMetricSet(fund.ID, asOf)
					metrics = &empty
				}

				row := screener.Row{Fund: fund, Metrics: *metrics}
				if rec, ok := scoresByFund[fund.ID]; ok {
					row.Score = &rec
				}
				resultCh <- &row
				wg.Done()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	rows := []screener.Row{}
	for row := range resultCh {
		if row != nil {
			rows = append(rows, *row)
		}
	}
	return rows
}
