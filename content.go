package legalrights

import "context"

// A fetched page passes through four stages before it is cached: the
// Cleaner strips noise, an Extractor isolates the article body, the
// Converter renders it as Markdown and an optional TokenCounter sizes it.

// Cleaner removes scripts, navigation and advertisements from raw HTML.
type Cleaner interface {
	Clean(html string) (string, error)

	// Title returns the best title found in the HTML, or "" if none.
	Title(html string) string
}

// ExtractResult is the article body of a page.
type ExtractResult struct {
	Title       string
	ContentHTML string
}

// Extractor isolates the main article of a cleaned page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter renders extracted HTML as Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// TokenCounter sizes text in model tokens. It is informational only and
// never fails a fetch.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
