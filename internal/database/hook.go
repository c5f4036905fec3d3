package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// slowQueryThreshold is the duration above which a successful query is
// logged at warn level. Pipeline queries run once per fix, so anything
// slower than this eats directly into the sampling cadence.
const slowQueryThreshold = 200 * time.Millisecond

// Hook logs bun queries through zap.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a query hook writing to the given logger.
func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger}
}

// BeforeQuery implements bun.QueryHook.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery logs the query outcome. Row misses are not failures; lookups
// like the push token fetch hit them on every unregistered user.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	fields := []zap.Field{
		zap.String("operation", event.Operation()),
		zap.Duration("duration", elapsed),
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		h.logger.Error("Query failed",
			append(fields, zap.String("query", event.Query), zap.Error(event.Err))...)
	case elapsed >= slowQueryThreshold:
		h.logger.Warn("Slow query",
			append(fields, zap.String("query", event.Query))...)
	default:
		h.logger.Debug("Query executed", fields...)
	}
}
