package legalrights

import (
	"context"
	"time"
)

// Page is a fetched page cached as markdown.
type Page struct {
	ID          string    `json:"id"`
	SourceID    string    `json:"sourceId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"` // Markdown
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.SourceID == "" {
		return Errorf(EINVALID, "page source ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageWriter writes pages to storage.
type PageWriter interface {
	SavePage(ctx context.Context, page *Page) error
}

// PageService represents a service for managing cached pages.
type PageService interface {
	// SavePage inserts the page, replacing any cached page with the same URL.
	SavePage(ctx context.Context, page *Page) error

	// FindPageByURL retrieves the cached page for a URL.
	// Returns ENOTFOUND if the page is not cached.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// DeletePagesBySource removes all cached pages of a source.
	DeletePagesBySource(ctx context.Context, sourceID string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	SourceID *string `json:"sourceId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
