// Package slog provides logging decorators for hydroagent services built on
// log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// Ensure LoggingHunter implements hydroagent.Hunter.
var _ hydroagent.Hunter = (*LoggingHunter)(nil)

// LoggingHunter wraps a Hunter and logs each query with its outcome.
type LoggingHunter struct {
	next   hydroagent.Hunter
	logger *slog.Logger
}

// NewLoggingHunter creates a new LoggingHunter.
func NewLoggingHunter(next hydroagent.Hunter, logger *slog.Logger) *LoggingHunter {
	return &LoggingHunter{next: next, logger: logger}
}

// GetBasinDocuments delegates to the wrapped hunter and logs the query.
func (h *LoggingHunter) GetBasinDocuments(ctx context.Context, identifier string) (result *hydroagent.HuntResult, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		attrs := []any{
			"identifier", identifier,
			"found", result.Found(),
			"duration", time.Since(begin),
		}
		if result.Found() {
			attrs = append(attrs,
				"basin", *result.BasinName,
				"year", *result.LatestYear,
				"annual_report", result.AnnualReportURL != nil,
				"gsp", result.GSPURL != nil,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", hydroagent.ErrorCode(err), "err", err)
		}
		h.logger.Log(ctx, level, "hunt", attrs...)
	}(time.Now())
	return h.next.GetBasinDocuments(ctx, identifier)
}
