package legalrights

import "context"

// Embedder maps text to fixed-dimension vectors.
// Implementations are selected once at startup; the index and retriever
// depend only on this interface.
type Embedder interface {
	// Embed returns the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the length of the vectors produced.
	Dimension() int

	// BatchSize returns the preferred number of texts per EmbedBatch call.
	BatchSize() int

	// Model identifies the embedding model, for cache keys and stats.
	Model() string
}
