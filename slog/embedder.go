package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/natmusissunny/legalrights"
)

// Ensure LoggingEmbedder implements legalrights.Embedder.
var _ legalrights.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
// Single embeds log at debug level since they run once per query.
type LoggingEmbedder struct {
	next   legalrights.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next legalrights.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed delegates to the wrapped embedder.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vector []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("embed",
			"model", e.next.Model(),
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// EmbedBatch delegates to the wrapped embedder.
func (e *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed batch",
			"model", e.next.Model(),
			"texts", len(texts),
			"vectors", len(vectors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.EmbedBatch(ctx, texts)
}

// Dimension delegates to the wrapped embedder.
func (e *LoggingEmbedder) Dimension() int { return e.next.Dimension() }

// BatchSize delegates to the wrapped embedder.
func (e *LoggingEmbedder) BatchSize() int { return e.next.BatchSize() }

// Model delegates to the wrapped embedder.
func (e *LoggingEmbedder) Model() string { return e.next.Model() }
