// Package slog provides logging decorators for wesber services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wesber"
)

// Ensure LoggingExtractor implements wesber.Extractor.
var _ wesber.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   wesber.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next wesber.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, path string, opts wesber.Options) (result *wesber.Result, err error) {
	defer func(begin time.Time) {
		var deps, missing int
		if result != nil {
			deps = len(result.Dependencies)
			missing = result.Missing()
		}
		e.logger.Info("extract",
			"path", path,
			"resolved", opts.Resolved,
			"deps", deps,
			"missing", missing,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, path, opts)
}
