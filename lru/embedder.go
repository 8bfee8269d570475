// Package lru caches embeddings in memory with least-recently-used eviction.
package lru

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/natmusissunny/legalrights"
)

// DefaultSize is the default number of cached embeddings.
const DefaultSize = 1000

// Ensure Embedder implements legalrights.Embedder at compile time.
var _ legalrights.Embedder = (*Embedder)(nil)

// Embedder wraps an Embedder so repeated texts are embedded once.
type Embedder struct {
	inner legalrights.Embedder
	cache *lru.Cache[string, []float32]
}

// NewEmbedder wraps inner with a cache of size entries.
// Zero or less selects DefaultSize.
func NewEmbedder(inner legalrights.Embedder, size int) *Embedder {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.New[string, []float32](size)
	return &Embedder{inner: inner, cache: cache}
}

// key is unique per text and model.
func (e *Embedder) key(text string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + e.inner.Model()))
	return hex.EncodeToString(sum[:])
}

// Embed returns the cached vector for text or embeds and caches it.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := e.key(text)
	if v, ok := e.cache.Get(key); ok {
		return v, nil
	}

	v, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, v)
	return v, nil
}

// EmbedBatch embeds only the texts missing from the cache, in one call.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	var missing []int
	var missingTexts []string
	for i, text := range texts {
		if v, ok := e.cache.Get(e.key(text)); ok {
			results[i] = v
			continue
		}
		missing = append(missing, i)
		missingTexts = append(missingTexts, text)
	}
	if len(missing) == 0 {
		return results, nil
	}

	vectors, err := e.inner.EmbedBatch(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, legalrights.Errorf(legalrights.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(missing))
	}

	for j, i := range missing {
		results[i] = vectors[j]
		e.cache.Add(e.key(texts[i]), vectors[j])
	}
	return results, nil
}

// Len returns the number of cached embeddings.
func (e *Embedder) Len() int { return e.cache.Len() }

// Dimension returns the wrapped embedder's dimension.
func (e *Embedder) Dimension() int { return e.inner.Dimension() }

// BatchSize returns the wrapped embedder's batch size.
func (e *Embedder) BatchSize() int { return e.inner.BatchSize() }

// Model returns the wrapped embedder's model.
func (e *Embedder) Model() string { return e.inner.Model() }
