// Package slog provides logging decorators for mailclean services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mailclean"
)

// Ensure LoggingCleaner implements mailclean.Cleaner.
var _ mailclean.Cleaner = (*LoggingCleaner)(nil)

// LoggingCleaner wraps a Cleaner with debug logging of per-message reduction.
type LoggingCleaner struct {
	next   mailclean.Cleaner
	logger *slog.Logger
}

// NewLoggingCleaner creates a new LoggingCleaner.
func NewLoggingCleaner(next mailclean.Cleaner, logger *slog.Logger) *LoggingCleaner {
	return &LoggingCleaner{next: next, logger: logger}
}

// Clean delegates to the wrapped cleaner and logs the outcome.
func (c *LoggingCleaner) Clean(payload string, info *mailclean.MessageInfo) mailclean.Result {
	begin := time.Now()
	result := c.next.Clean(payload, info)
	c.logger.Debug("cleaned payload",
		"original_bytes", result.Stats.OriginalBytes,
		"clean_bytes", result.Stats.CleanBytes,
		"reduction_percent", result.Stats.ReductionPercent,
		"duration", time.Since(begin),
	)
	return result
}
