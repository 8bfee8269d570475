package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var _ legalrights.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of legalrights.SourceService.
type SourceService struct {
	CreateSourceFn   func(ctx context.Context, source *legalrights.Source) error
	FindSourceByIDFn func(ctx context.Context, id string) (*legalrights.Source, error)
	FindSourcesFn    func(ctx context.Context, filter legalrights.SourceFilter) ([]*legalrights.Source, error)
	DeleteSourceFn   func(ctx context.Context, id string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *legalrights.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*legalrights.Source, error) {
	return s.FindSourceByIDFn(ctx, id)
}

func (s *SourceService) FindSources(ctx context.Context, filter legalrights.SourceFilter) ([]*legalrights.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	return s.DeleteSourceFn(ctx, id)
}
