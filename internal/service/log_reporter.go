package service

import (
	"fmt"
	"log/slog"
)

// LogReporter sends progress lines to the structured log, for runs that
// have no console.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter(runID string) *LogReporter {
	return &LogReporter{logger: slog.With("run_id", runID)}
}

func (r *LogReporter) Info(format string, a ...any) {
	r.logger.Info(fmt.Sprintf(format, a...))
}

func (r *LogReporter) Success(format string, a ...any) {
	r.logger.Info(fmt.Sprintf(format, a...))
}

func (r *LogReporter) Warning(format string, a ...any) {
	r.logger.Warn(fmt.Sprintf(format, a...))
}
