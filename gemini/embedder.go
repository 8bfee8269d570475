package gemini

import (
	"context"

	"github.com/natmusissunny/legalrights"
	"google.golang.org/genai"
)

// Embedding defaults.
const (
	DefaultEmbeddingModel     = "gemini-embedding-001"
	DefaultEmbeddingDimension = 768

	// MaxBatchSize is the most texts the API embeds per request.
	MaxBatchSize = 100
)

// Ensure Embedder implements legalrights.Embedder at compile time.
var _ legalrights.Embedder = (*Embedder)(nil)

// Embedder implements legalrights.Embedder using Gemini embedding models.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithEmbeddingModel sets the embedding model.
func WithEmbeddingModel(model string) EmbedderOption {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithDimension sets the requested output dimensionality.
func WithDimension(dim int) EmbedderOption {
	return func(e *Embedder) {
		if dim > 0 {
			e.dimension = dim
		}
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client:    client,
		model:     DefaultEmbeddingModel,
		dimension: DefaultEmbeddingDimension,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns the embedding of a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one embedding per text, in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, legalrights.Errorf(legalrights.EINVALID, "batch of %d texts exceeds limit of %d", len(texts), MaxBatchSize)
	}
	return e.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

func (e *Embedder) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	dim := int32(e.dimension)
	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, legalrights.Errorf(legalrights.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(resp), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, legalrights.Errorf(legalrights.EINTERNAL, "gemini returned empty embedding at %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}

// Dimension returns the output dimensionality.
func (e *Embedder) Dimension() int { return e.dimension }

// BatchSize returns the most texts embedded per request.
func (e *Embedder) BatchSize() int { return MaxBatchSize }

// Model returns the embedding model name.
func (e *Embedder) Model() string { return e.model }
