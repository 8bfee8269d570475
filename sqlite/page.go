package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natmusissunny/legalrights"
)

// Compile-time interface verification.
var _ legalrights.PageService = (*PageService)(nil)

// PageService implements legalrights.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = "id, source_id, url, title, content, content_hash, position, fetched_at"

// SavePage inserts the page or replaces the cached page with the same URL.
// The existing page ID is kept on replacement and written back to page.
func (s *PageService) SavePage(ctx context.Context, page *legalrights.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.FetchedAt.IsZero() {
		page.FetchedAt = s.db.now()
	}
	page.ContentHash = hashContent(page.Content)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			source_id = excluded.source_id,
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			position = excluded.position,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), page.SourceID, page.URL, page.Title, page.Content, page.ContentHash,
		page.Position, page.FetchedAt.UTC().Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}

	page.ID = id
	return nil
}

// FindPageByURL retrieves the cached page for a URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*legalrights.Page, error) {
	page, err := scanPage(s.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE url = ?", url))
	if err == sql.ErrNoRows {
		return nil, legalrights.Errorf(legalrights.ENOTFOUND, "page not found")
	}
	return page, err
}

// FindPages retrieves pages matching the filter in fetch order.
func (s *PageService) FindPages(ctx context.Context, filter legalrights.PageFilter) ([]*legalrights.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}

	query.WriteString(" ORDER BY position ASC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*legalrights.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// DeletePagesBySource removes all cached pages of a source.
func (s *PageService) DeletePagesBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE source_id = ?", sourceID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*legalrights.Page, error) {
	var page legalrights.Page
	var fetchedAt string

	if err := row.Scan(&page.ID, &page.SourceID, &page.URL, &page.Title, &page.Content,
		&page.ContentHash, &page.Position, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &page, nil
}
