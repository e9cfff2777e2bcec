package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to a slog logger at WARN.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Error(ctx context.Context, message string) {
	s.logger.WarnContext(ctx, "user notification", slog.String("notification.message", message))
}
