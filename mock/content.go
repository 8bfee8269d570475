package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var (
	_ legalrights.Cleaner      = (*Cleaner)(nil)
	_ legalrights.Extractor    = (*Extractor)(nil)
	_ legalrights.Converter    = (*Converter)(nil)
	_ legalrights.TokenCounter = (*TokenCounter)(nil)
)

type Cleaner struct {
	CleanFn func(html string) (string, error)
	TitleFn func(html string) string
}

func (c *Cleaner) Clean(html string) (string, error) { return c.CleanFn(html) }
func (c *Cleaner) Title(html string) string          { return c.TitleFn(html) }

type Extractor struct {
	ExtractFn func(html string) (*legalrights.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*legalrights.ExtractResult, error) {
	return e.ExtractFn(html)
}

type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) { return c.ConvertFn(html) }

type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
