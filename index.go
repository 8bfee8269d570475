package legalrights

import "context"

// IndexState is the lifecycle state of a vector index.
type IndexState int

const (
	IndexUnbuilt IndexState = iota
	IndexBuilding
	IndexReady
	IndexLoaded
)

// String returns the state name.
func (s IndexState) String() string {
	switch s {
	case IndexUnbuilt:
		return "unbuilt"
	case IndexBuilding:
		return "building"
	case IndexReady:
		return "ready"
	case IndexLoaded:
		return "loaded"
	}
	return "unknown"
}

// Queryable reports whether an index in this state can be searched.
func (s IndexState) Queryable() bool {
	return s == IndexReady || s == IndexLoaded
}

// IndexStats summarizes an index for operators.
type IndexStats struct {
	Indexed         bool     `json:"indexed"`
	TotalDocuments  int      `json:"total_documents,omitempty"`
	VectorDimension int      `json:"vector_dimension,omitempty"`
	IndexType       string   `json:"index_type,omitempty"`
	Model           string   `json:"model,omitempty"`
	Placeholders    int      `json:"placeholders,omitempty"`
	Sources         []string `json:"sources,omitempty"`
	Sections        []string `json:"sections,omitempty"`
}

// Index owns the embedding and similarity search lifecycle for a corpus.
//
// Build and Load replace the in-memory state and must not run concurrently
// with each other or with searches. Search, SearchVector, Chunks and Stats
// are safe for concurrent use once a build or load has completed.
type Index interface {
	// Build chunks and embeds the documents and constructs the index.
	// Returns EEMPTY if the documents produce no chunks.
	Build(ctx context.Context, docs []*Document) error

	// Search embeds the query and returns up to k nearest chunks with
	// similarity scores in (0, 1], most similar first.
	// Returns ENOTREADY before a successful build or load.
	Search(ctx context.Context, query string, k int) ([]*SearchResult, error)

	// SearchVector is like Search for an already embedded query.
	// Returns EDIMENSION if the vector length differs from the index dimension.
	SearchVector(vector []float32, k int) ([]*SearchResult, error)

	// Chunks returns the indexed chunks in index order.
	Chunks() []*Chunk

	// Save persists the index to dir.
	Save(dir string) error

	// Load restores the index from dir.
	// Returns ENOTFOUND if the vector or chunk file is missing.
	Load(dir string) error

	// Stats returns a summary, with Indexed false before a build or load.
	Stats() *IndexStats

	// State returns the lifecycle state.
	State() IndexState
}
