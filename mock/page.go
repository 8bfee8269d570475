package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var _ legalrights.PageService = (*PageService)(nil)

// PageService is a mock implementation of legalrights.PageService.
type PageService struct {
	SavePageFn            func(ctx context.Context, page *legalrights.Page) error
	FindPageByURLFn       func(ctx context.Context, url string) (*legalrights.Page, error)
	FindPagesFn           func(ctx context.Context, filter legalrights.PageFilter) ([]*legalrights.Page, error)
	DeletePagesBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *PageService) SavePage(ctx context.Context, page *legalrights.Page) error {
	return s.SavePageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*legalrights.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter legalrights.PageFilter) ([]*legalrights.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) DeletePagesBySource(ctx context.Context, sourceID string) error {
	return s.DeletePagesBySourceFn(ctx, sourceID)
}

var _ legalrights.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of legalrights.PageWriter.
type PageWriter struct {
	SavePageFn func(ctx context.Context, page *legalrights.Page) error
}

func (w *PageWriter) SavePage(ctx context.Context, page *legalrights.Page) error {
	return w.SavePageFn(ctx, page)
}
