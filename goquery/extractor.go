package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/natmusissunny/legalrights"
)

// Ensure Extractor implements legalrights.Extractor at compile time.
var _ legalrights.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first that matches wins.
var contentSelectors = []string{
	"article",
	`[class*="content"]`,
	`[class*="main"]`,
	`[class*="article"]`,
	`[id*="content"]`,
	`[id*="main"]`,
	`[id*="article"]`,
	"main",
}

// Extractor picks the main content container by selector heuristics. It is
// the last resort when the statistical extractors find nothing.
type Extractor struct {
	cleaner *Cleaner
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{cleaner: NewCleaner()}
}

// Extract returns the longest element matched by the first matching content
// selector, else the longest div that is not page furniture, else the body.
func (e *Extractor) Extract(source string) (*legalrights.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, legalrights.Errorf(legalrights.EINVALID, "failed to parse HTML: %v", err)
	}

	main := mainContent(doc)
	if main == nil {
		return &legalrights.ExtractResult{Title: e.cleaner.Title(source)}, nil
	}

	content, err := goquery.OuterHtml(main)
	if err != nil {
		return nil, err
	}

	return &legalrights.ExtractResult{
		Title:       e.cleaner.Title(source),
		ContentHTML: content,
	}, nil
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := longest(doc.Find(selector)); sel != nil {
			return sel
		}
	}

	divs := doc.Find("div").FilterFunction(func(i int, sel *goquery.Selection) bool {
		return !isNoise(i, sel)
	})
	if sel := longest(divs); sel != nil {
		return sel
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return nil
}

// longest returns the selection member with the most text, or nil if sel
// is empty.
func longest(sel *goquery.Selection) *goquery.Selection {
	var best *goquery.Selection
	bestLen := -1
	sel.Each(func(_ int, s *goquery.Selection) {
		if n := len(s.Text()); n > bestLen {
			best, bestLen = s, n
		}
	})
	return best
}
