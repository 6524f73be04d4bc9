package service

import (
	"context"
	"time"

	"fundscore/internal/backtest"
	"fundscore/internal/domain"
	"fundscore/internal/logger"
	"fundscore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BacktestRequest struct {
	Allocation      domain.Allocation
	Start           time.Time
	End             time.Time
	InitialAmount   decimal.Decimal
	RebalancePeriod domain.RebalancePeriod

	// BenchmarkName enables relative statistics; nil runs absolute-only.
	BenchmarkName *string
}

type BacktestService interface {
	Run(ctx context.Context, req BacktestRequest) (*domain.BacktestResult, error)
}

type backtestServiceHandler struct {
	FundRepository      repository.FundRepository
	NavRepository       repository.NavRepository
	BenchmarkRepository repository.BenchmarkRepository

	MaxRetries   int
	RiskFreeRate float64
}

func NewBacktestService(
	fundRepository repository.FundRepository,
	navRepository repository.NavRepository,
	benchmarkRepository repository.BenchmarkRepository,
) BacktestService {
	return backtestServiceHandler{
		FundRepository:      fundRepository,
		NavRepository:       navRepository,
		BenchmarkRepository: benchmarkRepository,
		MaxRetries:          3,
		RiskFreeRate:        0.065,
	}
}

func (h backtestServiceHandler) Run(ctx context.Context, req BacktestRequest) (*domain.BacktestResult, error) {
	if err := req.Allocation.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)

	navSeries := map[uuid.UUID]domain.NavSeries{}
	for _, entry := range req.Allocation.Entries {
		// verify the fund exists before pulling history so a bad id
		// surfaces as a lookup error, not an empty simulation sleeve
		if _, err := h.FundRepository.Get(ctx, entry.FundID); err != nil {
			return nil, err
		}

		var series domain.NavSeries
		err := h.retry(ctx, "list nav history", func() error {
			var listErr error
			series, listErr = h.NavRepository.List(ctx, entry.FundID, req.Start.AddDate(0, 0, -30), req.End)
			return listErr
		})
		if err != nil {
			return nil, err
		}
		navSeries[entry.FundID] = series
	}

	var benchmark []domain.BenchmarkPoint
	if req.BenchmarkName != nil {
		err := h.retry(ctx, "list benchmark prices", func() error {
			var listErr error
			benchmark, listErr = h.BenchmarkRepository.List(ctx, *req.BenchmarkName, req.Start.AddDate(0, 0, -30), req.End)
			return listErr
		})
		if err != nil {
			log.Warnf("benchmark %s unavailable, running absolute-only: %v", *req.BenchmarkName, err)
			benchmark = nil
		}
	}

	result, err := backtest.Run(backtest.Input{
		Allocation:      req.Allocation,
		Start:           req.Start,
		End:             req.End,
		InitialAmount:   req.InitialAmount,
		RebalancePeriod: req.RebalancePeriod,
		NavSeries:       navSeries,
		Benchmark:       benchmark,
		RiskFreeRate:    h.RiskFreeRate,
	})
	if err != nil {
		return nil, err
	}

	if len(result.ExcludedFunds) > 0 {
		log.Warnf("backtest excluded %d fund(s) with no nav data in range", len(result.ExcludedFunds))
	}
	return result, nil
}

func (h backtestServiceHandler) retry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= h.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 250 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err = fn()
		if err == nil {
			return nil
		}
	}
	return domain.UpstreamError{Op: op, Err: err}
}
