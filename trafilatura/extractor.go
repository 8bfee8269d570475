// Package trafilatura extracts the main text of law pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/natmusissunny/legalrights"
	"golang.org/x/net/html"
)

// Ensure Extractor implements legalrights.Extractor at compile time.
var _ legalrights.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura, keeping tables since statutes and
// compensation schedules are often laid out in them.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page title and main content.
// A page without recognizable content yields an empty ContentHTML.
func (e *Extractor) Extract(rawHTML string) (*legalrights.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, legalrights.Errorf(legalrights.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var content string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		content = buf.String()
	}

	return &legalrights.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: content,
	}, nil
}
