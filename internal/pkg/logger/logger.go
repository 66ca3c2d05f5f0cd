package logger

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger for the given level ("debug", "info", ...).
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	return cfg.Build()
}

// AddFields adds fields to the logger in context and returns new context
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(fields...))
}

// WithAction adds "action" field to context logger to describe the flow
func WithAction(ctx context.Context, action string) context.Context {
	logger := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, logger.With(zap.String("action", action)))
}
