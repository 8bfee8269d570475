package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var _ legalrights.Index = (*Index)(nil)

// Index is a mock implementation of legalrights.Index.
type Index struct {
	BuildFn        func(ctx context.Context, docs []*legalrights.Document) error
	SearchFn       func(ctx context.Context, query string, k int) ([]*legalrights.SearchResult, error)
	SearchVectorFn func(vector []float32, k int) ([]*legalrights.SearchResult, error)
	ChunksFn       func() []*legalrights.Chunk
	SaveFn         func(dir string) error
	LoadFn         func(dir string) error
	StatsFn        func() *legalrights.IndexStats
	StateFn        func() legalrights.IndexState
}

func (i *Index) Build(ctx context.Context, docs []*legalrights.Document) error {
	return i.BuildFn(ctx, docs)
}

func (i *Index) Search(ctx context.Context, query string, k int) ([]*legalrights.SearchResult, error) {
	return i.SearchFn(ctx, query, k)
}

func (i *Index) SearchVector(vector []float32, k int) ([]*legalrights.SearchResult, error) {
	return i.SearchVectorFn(vector, k)
}

func (i *Index) Chunks() []*legalrights.Chunk {
	return i.ChunksFn()
}

func (i *Index) Save(dir string) error {
	return i.SaveFn(dir)
}

func (i *Index) Load(dir string) error {
	return i.LoadFn(dir)
}

func (i *Index) Stats() *legalrights.IndexStats {
	return i.StatsFn()
}

func (i *Index) State() legalrights.IndexState {
	return i.StateFn()
}
