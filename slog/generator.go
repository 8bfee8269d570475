package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/natmusissunny/legalrights"
)

// Ensure LoggingGenerator implements legalrights.Generator.
var _ legalrights.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   legalrights.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next legalrights.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs prompt and answer sizes.
func (g *LoggingGenerator) Generate(ctx context.Context, system, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_chars", len([]rune(prompt)),
			"answer_chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, system, prompt)
}
