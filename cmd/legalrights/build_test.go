package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/natmusissunny/legalrights"
	main "github.com/natmusissunny/legalrights/cmd/legalrights"
	"github.com/natmusissunny/legalrights/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns empty without cached pages", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ legalrights.PageFilter) ([]*legalrights.Page, error) {
				return nil, nil
			},
		}

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Pages: pages}

		err := (&main.BuildCmd{}).Run(deps)

		assert.Equal(t, legalrights.EEMPTY, legalrights.ErrorCode(err))
		assert.Contains(t, legalrights.ErrorMessage(err), "fetch")
	})

	t.Run("parses pages with source category and saves index", func(t *testing.T) {
		t.Parallel()

		fetched := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ legalrights.PageFilter) ([]*legalrights.Page, error) {
				return []*legalrights.Page{{
					ID:        "page-1",
					SourceID:  "src-1",
					URL:       "https://example.com/ldht",
					Title:     "劳动合同法",
					Content:   "# 劳动合同法\n\n## 第一章 总则\n\n第一条 为了完善劳动合同制度。",
					FetchedAt: fetched,
				}}, nil
			},
		}
		sources := &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ legalrights.SourceFilter) ([]*legalrights.Source, error) {
				return []*legalrights.Source{{ID: "src-1", URL: "https://example.com/ldht", Category: "劳动合同"}}, nil
			},
		}

		var built []*legalrights.Document
		var savedDir string
		index := &mock.Index{
			BuildFn: func(_ context.Context, docs []*legalrights.Document) error {
				built = docs
				return nil
			},
			SaveFn: func(dir string) error {
				savedDir = dir
				return nil
			},
			StatsFn: func() *legalrights.IndexStats {
				return &legalrights.IndexStats{Indexed: true, TotalDocuments: 3, VectorDimension: 256, Model: "static-ngram"}
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Config:  &main.Config{IndexDir: "/data/vectors"},
			Sources: sources,
			Pages:   pages,
			Index:   index,
		}

		err := (&main.BuildCmd{}).Run(deps)

		require.NoError(t, err)
		require.Len(t, built, 1)
		assert.Equal(t, "https://example.com/ldht", built[0].URL)
		assert.Equal(t, "劳动合同法", built[0].Title)
		assert.Equal(t, "劳动合同", built[0].Category)
		assert.Equal(t, fetched, built[0].ScrapedAt)
		assert.Equal(t, "/data/vectors", savedDir)
		assert.Contains(t, stdout.String(), "Indexed 3 chunks")
	})

	t.Run("warns about placeholder chunks", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ legalrights.PageFilter) ([]*legalrights.Page, error) {
				return []*legalrights.Page{{SourceID: "src-1", URL: "https://example.com/a", Content: "第一条 内容"}}, nil
			},
		}
		sources := &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ legalrights.SourceFilter) ([]*legalrights.Source, error) {
				return nil, nil
			},
		}
		index := &mock.Index{
			BuildFn: func(_ context.Context, _ []*legalrights.Document) error { return nil },
			SaveFn:  func(_ string) error { return nil },
			StatsFn: func() *legalrights.IndexStats {
				return &legalrights.IndexStats{Indexed: true, TotalDocuments: 2, Placeholders: 1}
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Config:  &main.Config{IndexDir: t.TempDir()},
			Sources: sources,
			Pages:   pages,
			Index:   index,
		}

		err := (&main.BuildCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "1 chunks could not be embedded")
		assert.Contains(t, stderr.String(), "stored as zero vectors")
		assert.NotContains(t, stderr.String(), "will not match")
	})

	t.Run("does not save when build fails", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ legalrights.PageFilter) ([]*legalrights.Page, error) {
				return []*legalrights.Page{{SourceID: "src-1", URL: "https://example.com/a", Content: ""}}, nil
			},
		}
		sources := &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ legalrights.SourceFilter) ([]*legalrights.Source, error) {
				return nil, nil
			},
		}
		var saved bool
		index := &mock.Index{
			BuildFn: func(_ context.Context, _ []*legalrights.Document) error {
				return legalrights.Errorf(legalrights.EEMPTY, "no chunks produced from 1 documents")
			},
			SaveFn: func(_ string) error {
				saved = true
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Config:  &main.Config{IndexDir: t.TempDir()},
			Sources: sources,
			Pages:   pages,
			Index:   index,
		}

		err := (&main.BuildCmd{}).Run(deps)

		assert.Equal(t, legalrights.EEMPTY, legalrights.ErrorCode(err))
		assert.False(t, saved)
	})
}
