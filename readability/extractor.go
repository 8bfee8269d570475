// Package readability extracts the main text of pages with
// go-readability. It serves as the fallback when trafilatura finds nothing.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/natmusissunny/legalrights"
)

// Ensure Extractor implements legalrights.Extractor at compile time.
var _ legalrights.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct {
	// PageURL resolves relative links in the content. Optional.
	PageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main content.
func (e *Extractor) Extract(rawHTML string) (*legalrights.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, legalrights.Errorf(legalrights.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.PageURL)
	if err != nil {
		return nil, err
	}

	return &legalrights.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
