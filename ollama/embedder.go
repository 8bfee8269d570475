package ollama

import (
	"context"
	"fmt"

	"github.com/natmusissunny/legalrights"
	"github.com/ollama/ollama/api"
)

// DefaultBatchSize is the number of texts sent per embed request.
const DefaultBatchSize = 32

// Ensure Embedder implements legalrights.Embedder at compile time.
var _ legalrights.Embedder = (*Embedder)(nil)

// Embedder implements legalrights.Embedder with an Ollama embedding model.
type Embedder struct {
	client    *api.Client
	model     string
	dimension int
}

// NewEmbedder returns an Embedder for model producing vectors of length
// dimension. Empty or zero values select the defaults.
func NewEmbedder(client *api.Client, model string, dimension int) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if dimension <= 0 {
		dimension = DefaultEmbeddingDimension
	}
	return &Embedder{client: client, model: model, dimension: dimension}
}

// Embed returns the embedding of a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in a single request.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, legalrights.Errorf(legalrights.EINTERNAL, "ollama returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}
	for _, v := range resp.Embeddings {
		if len(v) != e.dimension {
			return nil, legalrights.Errorf(legalrights.EDIMENSION,
				"model %q returned %d dimensions, configured %d", e.model, len(v), e.dimension)
		}
	}
	return resp.Embeddings, nil
}

// Dimension returns the configured vector length.
func (e *Embedder) Dimension() int { return e.dimension }

// BatchSize returns the number of texts per request.
func (e *Embedder) BatchSize() int { return DefaultBatchSize }

// Model returns the embedding model name.
func (e *Embedder) Model() string { return e.model }
