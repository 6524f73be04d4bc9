package commands

import (
	"database/sql"
	"fmt"
	"log"

	"fundscore/api"
	"fundscore/internal"
	"fundscore/internal/calculator"
	"fundscore/internal/logger"
	"fundscore/internal/repository"
	"fundscore/internal/scorer"
	"fundscore/internal/service"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	fundRepository := repository.NewFundRepository(dbConn)
	navRepository := repository.NewNavRepository(dbConn)
	benchmarkRepository := repository.NewBenchmarkRepository(dbConn)
	fundScoreRepository := repository.NewFundScoreRepository(dbConn)
	scoringRunRepository := repository.NewScoringRunRepository(dbConn)

	metricsCalculator := calculator.NewService()

	scorerConfig := scorer.DefaultConfig()
	if scoringConfigPath != "" {
		scorerConfig, err = scorer.LoadConfig(scoringConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scoring config: %w", err)
		}
	}
	fundScorer := scorer.New(scorerConfig)

	scoringService := service.NewScoringService(
		fundRepository,
		navRepository,
		benchmarkRepository,
		fundScoreRepository,
		scoringRunRepository,
		metricsCalculator,
		fundScorer,
	)
	backtestService := service.NewBacktestService(
		fundRepository,
		navRepository,
		benchmarkRepository,
	)
	screenerService := service.NewScreenerService(
		fundRepository,
		fundScoreRepository,
		scoringService,
	)

	apiHandler := &api.ApiHandler{
		Db:                  dbConn,
		ScoringService:      scoringService,
		BacktestService:     backtestService,
		ScreenerService:     screenerService,
		FundRepository:      fundRepository,
		NavRepository:       navRepository,
		BenchmarkRepository: benchmarkRepository,
		FundScoreRepository: fundScoreRepository,
		Logger:              logger.New(),
	}

	return apiHandler, nil
}
