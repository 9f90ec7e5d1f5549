package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-company-repository/internal/logger"
)

// QueryLogger is a bun query hook logging each statement with its duration.
type QueryLogger struct {
	log *logger.Logger
}

var _ bun.QueryHook = (*QueryLogger)(nil)

func NewQueryLogger(log *logger.Logger) *QueryLogger {
	return &QueryLogger{log: log.With("component", "store")}
}

func (h *QueryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.log.Warn("query failed", "query", event.Query, "duration", duration, "error", event.Err)
		return
	}
	h.log.Debug("query", "query", event.Query, "duration", duration)
}
