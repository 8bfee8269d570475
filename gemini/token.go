package gemini

import (
	"context"
	"sync"

	"github.com/natmusissunny/legalrights"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel is the model whose vocabulary sizes fetched pages.
// Only models bundled with the local tokenizer work offline.
const DefaultTokenizerModel = "gemini-2.0-flash"

var _ legalrights.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes page Markdown with a local Gemini tokenizer, without
// any network calls.
type TokenCounter struct {
	model string

	mu  sync.Mutex // guards tok
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model, or DefaultTokenizerModel
// when model is empty. Unsupported models return ECONFIG.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, legalrights.Errorf(legalrights.ECONFIG, "tokenizer for %q: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens returns the token count of text as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	res, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
