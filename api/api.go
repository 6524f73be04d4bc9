package api

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fundscore/internal/domain"
	"fundscore/internal/logger"
	"fundscore/internal/repository"
	"fundscore/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Db                  *sql.DB
	ScoringService      service.ScoringService
	BacktestService     service.BacktestService
	ScreenerService     service.ScreenerService
	FundRepository      repository.FundRepository
	NavRepository       repository.NavRepository
	BenchmarkRepository repository.BenchmarkRepository
	FundScoreRepository repository.FundScoreRepository
	Logger              *zap.SugaredLogger
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to fundscore"})
	})
	router.POST("/score", m.score)
	router.GET("/rankings", m.rankings)
	router.POST("/backtest", m.backtest)
	router.POST("/screen", m.screen)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// returnDomainError maps error taxonomy onto status codes: bad input is
// the caller's fault, thin data is unprocessable, a failing upstream is
// a bad gateway.
func returnDomainError(err error, c *gin.Context) {
	var invalid domain.InvalidInputError
	var upstream domain.UpstreamError
	switch {
	case errors.As(err, &invalid):
		returnErrorJsonCode(err, c, 400)
	case errors.Is(err, domain.ErrInsufficientData):
		returnErrorJsonCode(err, c, 422)
	case errors.As(err, &upstream):
		returnErrorJsonCode(err, c, 502)
	default:
		returnErrorJson(err, c)
	}
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	log := m.Logger
	if log == nil {
		log = logger.New()
	}
	ctx.Request = ctx.Request.WithContext(logger.NewContext(ctx.Request.Context(), log))

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	)
}
