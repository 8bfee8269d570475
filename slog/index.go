package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/natmusissunny/legalrights"
)

// Ensure LoggingIndex implements legalrights.Index.
var _ legalrights.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with logging of its slow operations.
type LoggingIndex struct {
	next   legalrights.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next legalrights.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Build delegates to the wrapped index and logs the outcome.
func (i *LoggingIndex) Build(ctx context.Context, docs []*legalrights.Document) (err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"documents", len(docs),
			"duration", time.Since(begin),
			"err", err,
		}
		if err == nil {
			stats := i.next.Stats()
			attrs = append(attrs, "chunks", stats.TotalDocuments, "placeholders", stats.Placeholders)
		}
		i.logger.Info("index build", attrs...)
	}(time.Now())
	return i.next.Build(ctx, docs)
}

// Search delegates to the wrapped index and logs the query.
func (i *LoggingIndex) Search(ctx context.Context, query string, k int) (results []*legalrights.SearchResult, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index search",
			"query", query,
			"k", k,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Search(ctx, query, k)
}

// SearchVector delegates to the wrapped index.
func (i *LoggingIndex) SearchVector(vector []float32, k int) ([]*legalrights.SearchResult, error) {
	return i.next.SearchVector(vector, k)
}

// Chunks delegates to the wrapped index.
func (i *LoggingIndex) Chunks() []*legalrights.Chunk {
	return i.next.Chunks()
}

// Save delegates to the wrapped index and logs the outcome.
func (i *LoggingIndex) Save(dir string) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index save",
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Save(dir)
}

// Load delegates to the wrapped index and logs the outcome.
func (i *LoggingIndex) Load(dir string) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index load",
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Load(dir)
}

// Stats delegates to the wrapped index.
func (i *LoggingIndex) Stats() *legalrights.IndexStats {
	return i.next.Stats()
}

// State delegates to the wrapped index.
func (i *LoggingIndex) State() legalrights.IndexState {
	return i.next.State()
}
