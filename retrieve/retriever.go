// Package retrieve provides the application-facing read layer over a vector
// index: filtered vector retrieval, keyword retrieval and hybrid ranking.
package retrieve

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/natmusissunny/legalrights"
)

// Defaults for retrieval.
const (
	DefaultTopK         = 5
	DefaultVectorWeight = 0.7

	// overFetch is the candidate multiplier applied before filtering.
	overFetch = 2
)

// Options configures Retrieve.
type Options struct {
	TopK int
	// MinScore drops candidates scoring below it.
	MinScore float64
	// Section, when set, keeps only chunks with this section title.
	Section string
}

// Retriever ranks indexed chunks for a query.
//
// A Retriever whose index has no persisted state starts in a "no results"
// state: every method returns empty results until the index is built or
// loaded.
type Retriever struct {
	index  legalrights.Index
	logger *slog.Logger
}

// New returns a Retriever over index. If the index is not queryable it is
// loaded from dir; a missing index leaves the retriever in the no-results
// state, any other load failure is returned.
func New(index legalrights.Index, dir string, logger *slog.Logger) (*Retriever, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Retriever{index: index, logger: logger}

	if !index.State().Queryable() && dir != "" {
		if err := index.Load(dir); err != nil {
			if legalrights.ErrorCode(err) != legalrights.ENOTFOUND {
				return nil, err
			}
			logger.Warn("index not found, retrieval returns no results until it is built", "dir", dir, "err", err)
		}
	}

	return r, nil
}

// Ready reports whether the underlying index can be queried.
func (r *Retriever) Ready() bool {
	return r.index.State().Queryable()
}

// Stats returns the index summary.
func (r *Retriever) Stats() *legalrights.IndexStats {
	return r.index.Stats()
}

// Retrieve returns up to opts.TopK chunks for query. Candidates are
// over-fetched, then filtered by score and section without reordering.
func (r *Retriever) Retrieve(ctx context.Context, query string, opts Options) ([]*legalrights.SearchResult, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if !r.Ready() {
		return nil, nil
	}

	candidates, err := r.index.Search(ctx, query, topK*overFetch)
	if err != nil {
		return nil, err
	}

	results := make([]*legalrights.SearchResult, 0, topK)
	for _, c := range candidates {
		if c.Score < opts.MinScore {
			continue
		}
		if opts.Section != "" && c.Chunk.SectionTitle != opts.Section {
			continue
		}
		results = append(results, c)
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// RetrieveWithContext formats the top chunks for query as a prompt
// context block. Failures are logged and yield "".
func (r *Retriever) RetrieveWithContext(ctx context.Context, query string, topK int) string {
	results, err := r.Retrieve(ctx, query, Options{TopK: topK})
	if err != nil {
		r.logger.Error("retrieve context", "query", query, "err", err)
		return ""
	}
	return legalrights.FormatContext(results)
}

// RetrieveByKeyword returns up to topK chunks containing the most keywords,
// counted by case-insensitive substring match. Chunks without any keyword
// are dropped; equal counts keep index order.
func (r *Retriever) RetrieveByKeyword(keywords []string, topK int) []*legalrights.Chunk {
	if topK <= 0 {
		topK = DefaultTopK
	}

	scored := r.keywordScores(keywords)
	chunks := make([]*legalrights.Chunk, 0, min(topK, len(scored)))
	for _, s := range scored[:min(topK, len(scored))] {
		chunks = append(chunks, s.chunk)
	}
	return chunks
}

type keywordScore struct {
	chunk *legalrights.Chunk
	count int
}

// keywordScores returns every chunk with a positive keyword count,
// sorted by count descending, ties in index order.
func (r *Retriever) keywordScores(keywords []string) []keywordScore {
	if len(keywords) == 0 || !r.Ready() {
		return nil
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	var scored []keywordScore
	for _, c := range r.index.Chunks() {
		content := strings.ToLower(c.Content)
		var count int
		for _, k := range lowered {
			if strings.Contains(content, k) {
				count++
			}
		}
		if count > 0 {
			scored = append(scored, keywordScore{chunk: c, count: count})
		}
	}

	slices.SortStableFunc(scored, func(a, b keywordScore) int {
		return b.count - a.count
	})
	return scored
}

// HybridRetrieve ranks the union of vector and keyword candidates by
// vectorWeight*vectorScore + (1-vectorWeight)*keywordScore, where the
// keyword score is the fraction of keywords a chunk contains. A chunk
// found by only one signal scores 0 for the other.
func (r *Retriever) HybridRetrieve(ctx context.Context, query string, keywords []string, topK int, vectorWeight float64) ([]*legalrights.SearchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if vectorWeight < 0 || vectorWeight > 1 {
		return nil, legalrights.Errorf(legalrights.EINVALID, "vector weight must be in [0, 1], got %g", vectorWeight)
	}

	vectorResults, err := r.Retrieve(ctx, query, Options{TopK: topK * overFetch})
	if err != nil {
		return nil, err
	}

	keywordResults := r.keywordScores(keywords)
	keywordResults = keywordResults[:min(topK*overFetch, len(keywordResults))]

	type entry struct {
		chunk   *legalrights.Chunk
		vector  float64
		keyword float64
	}
	var order []string
	entries := make(map[string]*entry)
	lookup := func(c *legalrights.Chunk) *entry {
		e, ok := entries[c.ID]
		if !ok {
			e = &entry{chunk: c}
			entries[c.ID] = e
			order = append(order, c.ID)
		}
		return e
	}

	for _, v := range vectorResults {
		lookup(v.Chunk).vector = v.Score
	}
	for _, k := range keywordResults {
		lookup(k.chunk).keyword = float64(k.count) / float64(len(keywords))
	}

	results := make([]*legalrights.SearchResult, 0, len(order))
	for _, id := range order {
		e := entries[id]
		results = append(results, &legalrights.SearchResult{
			Chunk: e.chunk,
			Score: vectorWeight*e.vector + (1-vectorWeight)*e.keyword,
		})
	}

	slices.SortStableFunc(results, func(a, b *legalrights.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	return results[:min(topK, len(results))], nil
}
