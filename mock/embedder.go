package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var _ legalrights.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of legalrights.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn func(ctx context.Context, texts []string) ([][]float32, error)
	DimensionFn  func() int
	BatchSizeFn  func() int
	ModelFn      func() string
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedBatchFn(ctx, texts)
}

func (e *Embedder) Dimension() int {
	return e.DimensionFn()
}

func (e *Embedder) BatchSize() int {
	return e.BatchSizeFn()
}

func (e *Embedder) Model() string {
	return e.ModelFn()
}
