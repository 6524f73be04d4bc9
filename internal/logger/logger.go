package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("FUNDSCORE_ENV")) == "dev" {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "FUNDSCORE_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("FUNDSCORE_ENV"),
		}))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey struct{}

// ContextKey carries the request-scoped logger.
var ContextKey = contextKey{}

// NewContext returns a ctx carrying the given logger for downstream
// FromContext callers.
func NewContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if log, ok := ctx.Value(ContextKey).(*zap.SugaredLogger); ok {
		return log
	}
	return New()
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
