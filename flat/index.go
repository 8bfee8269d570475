// Package flat provides an exact, in-memory vector index that scans every
// stored vector with squared Euclidean distance.
package flat

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/natmusissunny/legalrights"
	"golang.org/x/time/rate"
)

// IndexType tags persisted stats with the kind of index.
const IndexType = "FlatL2"

// DefaultBatchSize is used when the embedder does not report a batch size.
const DefaultBatchSize = 100

// Ensure Index implements legalrights.Index at compile time.
var _ legalrights.Index = (*Index)(nil)

// Index is a flat L2 index over chunk vectors.
//
// Position i of the vector store and of the chunk list always refer to the
// same chunk. Build and Load prepare the new vectors and chunks off to the
// side and swap them in under the lock, so a query never mixes old and new
// contents. While Build runs the index is Building and queries fail with
// ENOTREADY; a failed Build restores the previous state.
type Index struct {
	embedder legalrights.Embedder
	chunker  *legalrights.Chunker
	limiter  *rate.Limiter
	logger   *slog.Logger
	progress ProgressFunc

	mu      sync.RWMutex
	state   legalrights.IndexState
	dim     int
	vectors []float32 // len(chunks) * dim values, row-major
	chunks  []*legalrights.Chunk
}

// ProgressFunc reports embedding progress during Build.
type ProgressFunc func(embedded, total int)

// Option configures an Index.
type Option func(*Index)

// WithChunker sets the chunker used by Build.
// Defaults to legalrights.DefaultChunkSize and legalrights.DefaultChunkOverlap.
func WithChunker(c *legalrights.Chunker) Option {
	return func(idx *Index) {
		idx.chunker = c
	}
}

// WithRateLimit paces embedding batches to at most rps requests per second.
// Zero or less disables pacing.
func WithRateLimit(rps float64) Option {
	return func(idx *Index) {
		if rps <= 0 {
			idx.limiter = nil
			return
		}
		idx.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger used to report degraded batches.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) {
		idx.logger = logger
	}
}

// WithProgress sets a callback invoked after each embedding batch.
func WithProgress(fn ProgressFunc) Option {
	return func(idx *Index) {
		idx.progress = fn
	}
}

// NewIndex creates an unbuilt index that embeds with embedder.
func NewIndex(embedder legalrights.Embedder, opts ...Option) *Index {
	idx := &Index{
		embedder: embedder,
		chunker:  legalrights.NewChunker(legalrights.DefaultChunkSize, legalrights.DefaultChunkOverlap),
		logger:   slog.New(slog.DiscardHandler),
		state:    legalrights.IndexUnbuilt,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// State returns the lifecycle state.
func (idx *Index) State() legalrights.IndexState {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state
}

// Build chunks docs, embeds every chunk and replaces the index contents.
//
// Batches the embedder fails on are stored as zero vectors and their
// chunks are flagged Placeholder, so the build still completes. If the
// build fails the index returns to its previous state.
func (idx *Index) Build(ctx context.Context, docs []*legalrights.Document) error {
	dim := idx.embedder.Dimension()
	if dim <= 0 {
		return legalrights.Errorf(legalrights.ECONFIG, "embedding dimension unknown for model %q", idx.embedder.Model())
	}
	if err := idx.chunker.Validate(); err != nil {
		return err
	}

	chunks := idx.chunker.ChunkDocuments(docs)
	if len(chunks) == 0 {
		return legalrights.Errorf(legalrights.EEMPTY, "no chunks produced from %d documents", len(docs))
	}

	prev := idx.setState(legalrights.IndexBuilding)

	vectors, err := idx.embedChunks(ctx, chunks, dim)
	if err != nil {
		idx.setState(prev)
		return err
	}

	idx.mu.Lock()
	idx.dim = dim
	idx.vectors = vectors
	idx.chunks = chunks
	idx.state = legalrights.IndexReady
	idx.mu.Unlock()

	return nil
}

// setState sets the state and returns the previous one.
func (idx *Index) setState(s legalrights.IndexState) legalrights.IndexState {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	prev := idx.state
	idx.state = s
	return prev
}

// embedChunks embeds chunk contents batch by batch and attaches the
// vectors to the chunks. It only fails on context cancellation.
func (idx *Index) embedChunks(ctx context.Context, chunks []*legalrights.Chunk, dim int) ([]float32, error) {
	batchSize := idx.embedder.BatchSize()
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	vectors := make([]float32, len(chunks)*dim)
	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))
		batch := chunks[start:end]

		if idx.limiter != nil {
			if err := idx.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		embeddings, err := idx.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			err = checkBatch(embeddings, len(batch), dim)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			idx.logger.Warn("embedding batch failed, storing zero vectors",
				"start", start,
				"size", len(batch),
				"err", err,
			)
		}

		for i, c := range batch {
			row := vectors[(start+i)*dim : (start+i+1)*dim : (start+i+1)*dim]
			if err != nil {
				c.Placeholder = true
			} else {
				copy(row, embeddings[i])
			}
			c.Embedding = row
		}

		if idx.progress != nil {
			idx.progress(end, len(chunks))
		}
	}

	return vectors, nil
}

// checkBatch verifies an embedder returned one vector of length dim per text.
func checkBatch(embeddings [][]float32, n, dim int) error {
	if len(embeddings) != n {
		return legalrights.Errorf(legalrights.EINTERNAL, "embedder returned %d vectors for %d texts", len(embeddings), n)
	}
	for _, e := range embeddings {
		if len(e) != dim {
			return legalrights.Errorf(legalrights.EDIMENSION, "embedder returned vector of length %d, want %d", len(e), dim)
		}
	}
	return nil
}

// Search embeds query and returns up to k nearest chunks.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]*legalrights.SearchResult, error) {
	if s := idx.State(); !s.Queryable() {
		return nil, legalrights.Errorf(legalrights.ENOTREADY, "index is %s; build or load it first", s)
	}

	vector, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	return idx.SearchVector(vector, k)
}

// SearchVector returns up to k chunks nearest to vector, most similar first.
// Similarity is 1/(1+d) for squared L2 distance d. Equal distances keep
// index order.
func (idx *Index) SearchVector(vector []float32, k int) ([]*legalrights.SearchResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.state.Queryable() {
		return nil, legalrights.Errorf(legalrights.ENOTREADY, "index is %s; build or load it first", idx.state)
	}
	if len(vector) != idx.dim {
		return nil, legalrights.Errorf(legalrights.EDIMENSION, "query vector has dimension %d, index has %d", len(vector), idx.dim)
	}
	if k <= 0 || len(idx.chunks) == 0 {
		return nil, nil
	}

	type hit struct {
		pos  int
		dist float64
	}
	hits := make([]hit, len(idx.chunks))
	for i := range idx.chunks {
		hits[i] = hit{pos: i, dist: squaredL2(vector, idx.vectors[i*idx.dim:(i+1)*idx.dim])}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].dist < hits[b].dist
	})

	k = min(k, len(hits))
	results := make([]*legalrights.SearchResult, k)
	for i := range k {
		results[i] = &legalrights.SearchResult{
			Chunk: idx.chunks[hits[i].pos],
			Score: 1 / (1 + hits[i].dist),
		}
	}
	return results, nil
}

// squaredL2 returns the squared Euclidean distance between a and b.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// Chunks returns the indexed chunks in index order.
func (idx *Index) Chunks() []*legalrights.Chunk {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if !idx.state.Queryable() {
		return nil
	}
	return slices.Clone(idx.chunks)
}

// Stats returns a summary of the index.
func (idx *Index) Stats() *legalrights.IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.stats()
}

func (idx *Index) stats() *legalrights.IndexStats {
	if !idx.state.Queryable() {
		return &legalrights.IndexStats{Indexed: false}
	}

	sources := make(map[string]struct{})
	sections := make(map[string]struct{})
	var placeholders int
	for _, c := range idx.chunks {
		sources[c.SourceURL] = struct{}{}
		if c.SectionTitle != "" {
			sections[c.SectionTitle] = struct{}{}
		}
		if c.Placeholder {
			placeholders++
		}
	}

	return &legalrights.IndexStats{
		Indexed:         true,
		TotalDocuments:  len(idx.chunks),
		VectorDimension: idx.dim,
		IndexType:       IndexType,
		Model:           idx.embedder.Model(),
		Placeholders:    placeholders,
		Sources:         sortedKeys(sources),
		Sections:        sortedKeys(sections),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
