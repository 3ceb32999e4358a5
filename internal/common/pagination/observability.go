package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs an outgoing page request with structured fields.
func LogRequest(logger *slog.Logger, seq uint64, params Params) {
	logger.Debug("Recipe page requested",
		slog.Uint64("seq", seq),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit))
}

// LogResponse logs a resolved page request with duration and outcome.
func LogResponse(logger *slog.Logger, seq uint64, params Params, returnedCount int, total int64, duration time.Duration, outcome string) {
	logger.Info("Recipe page resolved",
		slog.Uint64("seq", seq),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Int64("total", total),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("outcome", outcome))
}

// LogError logs a failed page request.
func LogError(logger *slog.Logger, seq uint64, params Params, err error) {
	logger.Warn("Recipe page fetch failed",
		slog.Uint64("seq", seq),
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Any("error", err))
}
