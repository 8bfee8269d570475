// Package static provides an offline embedder that hashes character
// n-grams into a fixed-size vector. It needs no network or model and is
// deterministic, at the cost of semantic quality.
package static

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/natmusissunny/legalrights"
)

// Defaults.
const (
	DefaultDimension = 256
	ModelName        = "static-ngram"

	batchSize = 256
)

// Gram weights. Bigrams carry most of the meaning in Chinese text.
const (
	unigramWeight = 0.3
	bigramWeight  = 0.7
	wordWeight    = 0.7
)

// Ensure Embedder implements legalrights.Embedder at compile time.
var _ legalrights.Embedder = (*Embedder)(nil)

// Embedder hashes text features into L2-normalized vectors.
type Embedder struct {
	dimension int
}

// NewEmbedder returns an Embedder producing vectors of length dimension.
// Zero or less selects DefaultDimension.
func NewEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{dimension: dimension}
}

// Embed returns the vector for text. Blank text maps to the zero vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.vector(text), nil
}

// EmbedBatch returns one vector per text.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	v := make([]float32, e.dimension)

	var runes []rune
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			v[e.bucket("w:"+word.String())] += wordWeight
			word.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			runes = append(runes, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+':
			word.WriteRune(r)
		default:
			flush()
			// Punctuation breaks bigram runs.
			runes = append(runes, 0)
		}
	}
	flush()

	for i, r := range runes {
		if r == 0 {
			continue
		}
		v[e.bucket(string(r))] += unigramWeight
		if i+1 < len(runes) && runes[i+1] != 0 {
			v[e.bucket(string(runes[i:i+2]))] += bigramWeight
		}
	}

	normalize(v)
	return v
}

func (e *Embedder) bucket(feature string) int {
	return int(xxhash.Sum64String(feature) % uint64(e.dimension))
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}

// Dimension returns the vector length.
func (e *Embedder) Dimension() int { return e.dimension }

// BatchSize returns the preferred batch size.
func (e *Embedder) BatchSize() int { return batchSize }

// Model returns ModelName.
func (e *Embedder) Model() string { return ModelName }
