package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"fundscore/internal/calculator"
	"fundscore/internal/domain"
	"fundscore/internal/logger"
	"fundscore/internal/ranker"
	"fundscore/internal/repository"
	"fundscore/internal/scorer"

	"github.com/google/uuid"
)

type ScoringService interface {
	ComputeMetrics(ctx context.Context, fundID uuid.UUID, asOf time.Time) (*domain.MetricSet, error)
	ComputeScore(ctx context.Context, fundID uuid.UUID, asOf time.Time) (*domain.ScoreRecord, error)
	RankPeerGroup(ctx context.Context, key domain.PeerGroupKey, asOf time.Time) ([]domain.ScoreRecord, error)
	ScoreBatch(ctx context.Context, asOf time.Time) (*domain.BatchSummary, error)
}

type scoringServiceHandler struct {
	FundRepository       repository.FundRepository
	NavRepository        repository.NavRepository
	BenchmarkRepository  repository.BenchmarkRepository
	FundScoreRepository  repository.FundScoreRepository
	ScoringRunRepository repository.ScoringRunRepository
	Calculator           *calculator.Service
	Scorer               *scorer.Scorer

	NumWorkers int
	MaxRetries int
}

func NewScoringService(
	fundRepository repository.FundRepository,
	navRepository repository.NavRepository,
	benchmarkRepository repository.BenchmarkRepository,
	fundScoreRepository repository.FundScoreRepository,
	scoringRunRepository repository.ScoringRunRepository,
	metricsCalculator *calculator.Service,
	fundScorer *scorer.Scorer,
) ScoringService {
	return scoringServiceHandler{
		FundRepository:       fundRepository,
		NavRepository:        navRepository,
		BenchmarkRepository:  benchmarkRepository,
		FundScoreRepository:  fundScoreRepository,
		ScoringRunRepository: scoringRunRepository,
		Calculator:           metricsCalculator,
		Scorer:               fundScorer,
		NumWorkers:           10,
		MaxRetries:           3,
	}
}

// navHistoryYears bounds how far back a metrics computation reads. The
// longest lookback is five years; the extra year absorbs tolerance
// windows and thin early histories.
const navHistoryYears = 6

func (h scoringServiceHandler) ComputeMetrics(ctx context.Context, fundID uuid.UUID, asOf time.Time) (*domain.MetricSet, error) {
	fund, err := h.FundRepository.Get(ctx, fundID)
	if err != nil {
		return nil, err
	}
	return h.computeMetricsForFund(ctx, *fund, asOf)
}

func (h scoringServiceHandler) computeMetricsForFund(ctx context.Context, fund domain.Fund, asOf time.Time) (*domain.MetricSet, error) {
	var series domain.NavSeries
	err := h.withRetry(ctx, "list nav history", func() error {
		var listErr error
		series, listErr = h.NavRepository.List(ctx, fund.ID, asOf.AddDate(-navHistoryYears, 0, 0), asOf)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	if len(series) < h.Calculator.MinNavPoints {
		// every metric comes back absent; the caller decides whether a
		// metric-less fund is scored from its attributes or skipped
		metrics := h.Calculator.Compute(series, nil, asOf)
		metrics.FundID = fund.ID
		return &metrics, nil
	}

	var benchmark []domain.BenchmarkPoint
	err = h.withRetry(ctx, "list benchmark prices", func() error {
		var listErr error
		benchmark, listErr = h.BenchmarkRepository.List(
			ctx,
			fund.Benchmark(),
			asOf.AddDate(-h.Calculator.RiskWindowYears, 0, -30),
			asOf,
		)
		return listErr
	})
	if err != nil {
		// beta is the only casualty; compute everything else
		logger.FromContext(ctx).Warnf("benchmark unavailable for %s: %v", fund.SchemeCode, err)
		benchmark = nil
	}

	metrics := h.Calculator.Compute(series, benchmark, asOf)
	return &metrics, nil
}

// ComputeScore scores one fund against its peer group and upserts the
// ranked records for the whole group, so recomputing the same fund and
// date overwrites deterministically. A fund whose metrics are all
// absent is still scored from its attributes, but carries no rank for
// the cycle.
func (h scoringServiceHandler) ComputeScore(ctx context.Context, fundID uuid.UUID, asOf time.Time) (*domain.ScoreRecord, error) {
	fund, err := h.FundRepository.Get(ctx, fundID)
	if err != nil {
		return nil, err
	}

	funds, err := h.listPeerGroup(ctx, fund.PeerGroup())
	if err != nil {
		return nil, err
	}

	outcomes := h.computeMetricsParallel(ctx, funds, asOf)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outcome, ok := outcomes[fund.ID]
	if !ok {
		return nil, fmt.Errorf("fund %s missing from peer group %s", fund.SchemeCode, fund.PeerGroup().String())
	}
	if outcome.err != nil {
		return nil, outcome.err
	}

	ranked := ranker.RankGroup(h.scoreGroup(funds, outcomes, asOf))

	var record *domain.ScoreRecord
	for i := range ranked {
		if ranked[i].FundID == fund.ID {
			record = &ranked[i]
		}
	}
	if record == nil {
		peers := scorer.NewPeerDistribution(h.groupSets(funds, outcomes))
		rec := h.Scorer.Score(*fund, *outcome.metrics, peers, asOf)
		rec.Recommendation = ranker.Recommend(rec)
		ranked = append(ranked, rec)
		record = &rec
	}

	err = h.withRetry(ctx, "persist fund scores", func() error {
		return h.FundScoreRepository.AddMany(ctx, ranked)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (h scoringServiceHandler) RankPeerGroup(ctx context.Context, key domain.PeerGroupKey, asOf time.Time) ([]domain.ScoreRecord, error) {
	funds, err := h.listPeerGroup(ctx, key)
	if err != nil {
		return nil, err
	}

	outcomes := h.computeMetricsParallel(ctx, funds, asOf)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := h.scoreGroup(funds, outcomes, asOf)
	return ranker.RankGroup(records), nil
}

// ScoreBatch recomputes and persists scores for every fund. Failures
// are isolated per fund. On cancellation the peer groups already
// written stay written; the summary marks the run cancelled.
func (h scoringServiceHandler) ScoreBatch(ctx context.Context, asOf time.Time) (*domain.BatchSummary, error) {
	log := logger.FromContext(ctx)
	startedAt := time.Now().UTC()
	summary := &domain.BatchSummary{
		RunID:     uuid.New(),
		ScoreDate: asOf,
		StartedAt: startedAt,
	}

	funds, err := h.FundRepository.List(ctx, repository.FundListFilter{})
	if err != nil {
		return nil, err
	}
	log.Infof("scoring %d funds as of %s", len(funds), asOf.Format(time.DateOnly))

	outcomes := h.computeMetricsParallel(ctx, funds, asOf)

	fundsByGroup := map[domain.PeerGroupKey][]domain.Fund{}
	for _, fund := range funds {
		outcome, ok := outcomes[fund.ID]
		if !ok {
			continue
		}
		if outcome.err != nil {
			switch {
			case errors.Is(outcome.err, domain.ErrInsufficientData):
				summary.Skipped = append(summary.Skipped, fund.ID)
			case errors.Is(outcome.err, context.Canceled), errors.Is(outcome.err, context.DeadlineExceeded):
				// never attempted; the cancelled flag covers it
			default:
				summary.Failed = append(summary.Failed, domain.BatchItemFailure{
					FundID: fund.ID,
					Err:    outcome.err.Error(),
				})
			}
			continue
		}
		if outcome.metrics.Empty() {
			summary.Skipped = append(summary.Skipped, fund.ID)
			continue
		}
		fundsByGroup[fund.PeerGroup()] = append(fundsByGroup[fund.PeerGroup()], fund)
	}

	// rank and persist group by group so a cancelled run still leaves
	// complete, internally consistent peer groups behind
	for _, key := range sortedGroupKeys(fundsByGroup) {
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			break
		}

		records := h.scoreGroup(fundsByGroup[key], outcomes, asOf)
		ranked := ranker.RankGroup(records)

		err := h.withRetry(ctx, "persist fund scores", func() error {
			return h.FundScoreRepository.AddMany(ctx, ranked)
		})
		if err != nil {
			log.Errorf("failed to persist scores for %s: %v", key.String(), err)
			for _, rec := range ranked {
				summary.Failed = append(summary.Failed, domain.BatchItemFailure{
					FundID: rec.FundID,
					Err:    err.Error(),
				})
			}
			continue
		}
		summary.Scored += len(ranked)
	}
	if ctx.Err() != nil {
		summary.Cancelled = true
	}

	summary.ElapsedMs = time.Since(startedAt).Milliseconds()
	if err := h.ScoringRunRepository.Add(context.WithoutCancel(ctx), *summary); err != nil {
		log.Errorf("failed to record scoring run: %v", err)
	}

	log.Infof("scored %d funds, skipped %d, failed %d in %dms",
		summary.Scored, len(summary.Skipped), len(summary.Failed), summary.ElapsedMs)
	return summary, nil
}

type metricsOutcome struct {
	metrics *domain.MetricSet
	err     error
}

type metricsWorkResult struct {
	fundID  uuid.UUID
	outcome metricsOutcome
}

// computeMetricsParallel fans fund metric computations out over a fixed
// worker pool. Funds cut off by cancellation carry the context error as
// their outcome; they were never attempted.
func (h scoringServiceHandler) computeMetricsParallel(ctx context.Context, funds []domain.Fund, asOf time.Time) map[uuid.UUID]metricsOutcome {
	inputCh := make(chan domain.Fund, len(funds))
	resultCh := make(chan metricsWorkResult, len(funds))

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
				if err := ctx.Err(); err != nil {
					resultCh <- metricsWorkResult{fundID: fund.ID, outcome: metricsOutcome{err: err}}
					wg.Done()
					continue
				}
				metrics, err := h.computeMetricsForFund(ctx, fund, asOf)
				resultCh <- metricsWorkResult{
					fundID:  fund.ID,
					outcome: metricsOutcome{metrics: metrics, err: err},
				}
				wg.Done()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := map[uuid.UUID]metricsOutcome{}
	for res := range resultCh {
		out[res.fundID] = res.outcome
	}
	return out
}

// scoreGroup scores one peer cohort against its own distribution.
// Funds with no computable metrics at all contribute nothing and are
// not scored here.
func (h scoringServiceHandler) scoreGroup(funds []domain.Fund, outcomes map[uuid.UUID]metricsOutcome, asOf time.Time) []domain.ScoreRecord {
	peers := scorer.NewPeerDistribution(h.groupSets(funds, outcomes))

	records := []domain.ScoreRecord{}
	for _, fund := range funds {
		outcome, ok := outcomes[fund.ID]
		if !ok || outcome.err != nil || outcome.metrics.Empty() {
			continue
		}
		records = append(records, h.Scorer.Score(fund, *outcome.metrics, peers, asOf))
	}
	return records
}

func (h scoringServiceHandler) groupSets(funds []domain.Fund, outcomes map[uuid.UUID]metricsOutcome) []domain.MetricSet {
	sets := []domain.MetricSet{}
	for _, fund := range funds {
		if outcome, ok := outcomes[fund.ID]; ok && outcome.err == nil && !outcome.metrics.Empty() {
			sets = append(sets, *outcome.metrics)
		}
	}
	return sets
}

func (h scoringServiceHandler) listPeerGroup(ctx context.Context, key domain.PeerGroupKey) ([]domain.Fund, error) {
	return h.FundRepository.List(ctx, repository.FundListFilter{
		Category:    &key.Category,
		Subcategory: &key.Subcategory,
	})
}

func sortedGroupKeys(groups map[domain.PeerGroupKey][]domain.Fund) []domain.PeerGroupKey {
	keys := make([]domain.PeerGroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// withRetry retries transient upstream failures with bounded backoff.
// domain errors pass through untouched; the final failure is wrapped so
// callers can distinguish upstream faults from bad input.
func (h scoringServiceHandler) withRetry(ctx context.Context, op string, fn func() error) error {
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
		if errors.Is(err, domain.ErrInsufficientData) || errors.Is(err, context.Canceled) {
			return err
		}
	}
	return domain.UpstreamError{Op: op, Err: err}
}
