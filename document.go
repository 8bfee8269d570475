package legalrights

import (
	"time"
)

// DefaultDocumentTitle is used when no title can be derived for a page.
const DefaultDocumentTitle = "未命名文档"

// BodySectionTitle names the section that holds text outside any heading.
const BodySectionTitle = "正文"

// Document is a structured legal document: a title plus an ordered forest
// of sections. It is built once per cached page and consumed read-only by
// the Chunker.
type Document struct {
	URL       string       `json:"url"`
	Title     string       `json:"title"`
	ScrapedAt time.Time    `json:"scrapedAt"`
	Category  string       `json:"category,omitempty"`
	Sections  *SectionTree `json:"sections"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}
