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
var _ legalrights.SourceService = (*SourceService)(nil)

// SourceService implements legalrights.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource creates a new source.
func (s *SourceService) CreateSource(ctx context.Context, source *legalrights.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	source.ID = uuid.New().String()
	source.CreatedAt = s.db.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (id, url, title, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, source.ID, source.URL, source.Title, source.Category, source.CreatedAt.Format(time.RFC3339))
	if isUniqueViolation(err) {
		return legalrights.Errorf(legalrights.ECONFLICT, "source %s already exists", source.URL)
	}

	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*legalrights.Source, error) {
	var source legalrights.Source
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, category, created_at
		FROM sources
		WHERE id = ?
	`, id).Scan(&source.ID, &source.URL, &source.Title, &source.Category, &createdAt)

	if err == sql.ErrNoRows {
		return nil, legalrights.Errorf(legalrights.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}

	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &source, nil
}

// FindSources retrieves sources matching the filter, oldest first.
func (s *SourceService) FindSources(ctx context.Context, filter legalrights.SourceFilter) ([]*legalrights.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, category, created_at FROM sources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY created_at ASC, rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*legalrights.Source
	for rows.Next() {
		var source legalrights.Source
		var createdAt string

		if err := rows.Scan(&source.ID, &source.URL, &source.Title, &source.Category, &createdAt); err != nil {
			return nil, err
		}
		if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		sources = append(sources, &source)
	}

	return sources, rows.Err()
}

// DeleteSource permanently removes a source. Its cached pages are removed
// by the foreign key cascade.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return legalrights.Errorf(legalrights.ENOTFOUND, "source not found")
	}

	return nil
}
