package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"fundscore/internal/db/models/postgres/public/model"
	"fundscore/internal/db/models/postgres/public/table"
	"fundscore/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
)

type BenchmarkRepository interface {
	Add(ctx context.Context, prices []model.BenchmarkPrice) error
	List(ctx context.Context, name string, start, end time.Time) ([]domain.BenchmarkPoint, error)
}

type benchmarkCache map[string][]domain.BenchmarkPoint

func NewBenchmarkRepository(db *sql.DB) BenchmarkRepository {
	return &benchmarkRepositoryHandler{
		Db:        db,
		Cache:     benchmarkCache{},
		ReadMutex: &sync.RWMutex{},
	}
}

// benchmarkRepositoryHandler caches list results per (name, range).
// A scoring run hits the same benchmark range once per fund in the peer
// group, so the cache turns n queries into one.
type benchmarkRepositoryHandler struct {
	Db        *sql.DB
	Cache     benchmarkCache
	ReadMutex *sync.RWMutex
}

func cacheKey(name string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", name, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

func (h *benchmarkRepositoryHandler) getFromCache(key string) []domain.BenchmarkPoint {
	h.ReadMutex.RLock()
	defer h.ReadMutex.RUnlock()
	return h.Cache[key]
}

func (h *benchmarkRepositoryHandler) addToCache(key string, points []domain.BenchmarkPoint) {
	h.ReadMutex.Lock()
	h.Cache[key] = points
	h.ReadMutex.Unlock()
}

func (h *benchmarkRepositoryHandler) Add(ctx context.Context, prices []model.BenchmarkPrice) error {
	for start := 0; start < len(prices); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(prices) {
			end = len(prices)
		}
		chunk := make([]model.BenchmarkPrice, end-start)
		copy(chunk, prices[start:end])
		for i := range chunk {
			chunk[i].CreatedAt = time.Now().UTC()
		}

		query := table.BenchmarkPrice.
			INSERT(table.BenchmarkPrice.AllColumns).
			MODELS(chunk).
			ON_CONFLICT(table.BenchmarkPrice.BenchmarkName, table.BenchmarkPrice.Date).
			DO_UPDATE(postgres.SET(
				table.BenchmarkPrice.Value.SET(table.BenchmarkPrice.EXCLUDED.Value),
			))

		_, err := query.ExecContext(ctx, h.Db)
		if err != nil {
			return fmt.Errorf("failed to add benchmark prices: %w", err)
		}
	}

	// stale entries would otherwise survive a re-seed
	h.ReadMutex.Lock()
	h.Cache = benchmarkCache{}
	h.ReadMutex.Unlock()

	return nil
}

func (h *benchmarkRepositoryHandler) List(ctx context.Context, name string, start, end time.Time) ([]domain.BenchmarkPoint, error) {
	key := cacheKey(name, start, end)
	if cached := h.getFromCache(key); cached != nil {
		return cached, nil
	}

	query := table.BenchmarkPrice.
		SELECT(table.BenchmarkPrice.AllColumns).
		WHERE(postgres.AND(
			table.BenchmarkPrice.BenchmarkName.EQ(postgres.String(name)),
			table.BenchmarkPrice.Date.BETWEEN(postgres.DateT(start), postgres.DateT(end)),
		)).
		ORDER_BY(table.BenchmarkPrice.Date.ASC())

	out := []model.BenchmarkPrice{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list benchmark prices for %s: %w", name, err)
	}

	points := make([]domain.BenchmarkPoint, 0, len(out))
	for _, m := range out {
		points = append(points, domain.BenchmarkPoint{
			Name:  m.BenchmarkName,
			Date:  m.Date,
			Value: m.Value,
		})
	}

	h.addToCache(key, points)
	return points, nil
}
