package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_SavePage(t *testing.T) {
	t.Parallel()

	t.Run("inserts page with ID and content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		source := createSource(t, sqlite.NewSourceService(db), "https://example.com/law", "")
		svc := sqlite.NewPageService(db)

		page := &legalrights.Page{
			SourceID: source.ID,
			URL:      source.URL,
			Title:    "劳动合同法",
			Content:  "# 劳动合同法",
		}
		require.NoError(t, svc.SavePage(context.Background(), page))

		assert.NotEmpty(t, page.ID)
		assert.Len(t, page.ContentHash, 16)
		assert.False(t, page.FetchedAt.IsZero())
	})

	t.Run("replaces the cached page for the same URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		source := createSource(t, sqlite.NewSourceService(db), "https://example.com/law", "")
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		first := &legalrights.Page{SourceID: source.ID, URL: source.URL, Title: "旧", Content: "旧内容"}
		require.NoError(t, svc.SavePage(ctx, first))

		second := &legalrights.Page{SourceID: source.ID, URL: source.URL, Title: "新", Content: "新内容"}
		require.NoError(t, svc.SavePage(ctx, second))

		assert.Equal(t, first.ID, second.ID)
		assert.NotEqual(t, first.ContentHash, second.ContentHash)

		found, err := svc.FindPageByURL(ctx, source.URL)
		require.NoError(t, err)
		assert.Equal(t, "新", found.Title)
		assert.Equal(t, "新内容", found.Content)

		pages, err := svc.FindPages(ctx, legalrights.PageFilter{})
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})

	t.Run("identical content hashes equal", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		sources := sqlite.NewSourceService(db)
		a := createSource(t, sources, "https://example.com/a", "")
		b := createSource(t, sources, "https://example.com/b", "")
		svc := sqlite.NewPageService(db)

		pa := &legalrights.Page{SourceID: a.ID, URL: a.URL, Content: "同一内容"}
		pb := &legalrights.Page{SourceID: b.ID, URL: b.URL, Content: "同一内容"}
		require.NoError(t, svc.SavePage(context.Background(), pa))
		require.NoError(t, svc.SavePage(context.Background(), pb))

		assert.Equal(t, pa.ContentHash, pb.ContentHash)
	})

	t.Run("returns EINVALID without a source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.SavePage(context.Background(), &legalrights.Page{URL: "https://example.com/a"})

		require.Error(t, err)
		assert.Equal(t, legalrights.EINVALID, legalrights.ErrorCode(err))
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.SavePage(context.Background(), &legalrights.Page{SourceID: "missing", URL: "https://example.com/a"})

		require.Error(t, err)
	})
}

func TestPageService_FindPageByURL(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		source := createSource(t, sqlite.NewSourceService(db), "https://example.com/law", "")
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		fetched := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)
		page := &legalrights.Page{
			SourceID:  source.ID,
			URL:       source.URL,
			Title:     "劳动合同法",
			Content:   "## 第一章 总则",
			Position:  3,
			FetchedAt: fetched,
		}
		require.NoError(t, svc.SavePage(ctx, page))

		found, err := svc.FindPageByURL(ctx, source.URL)

		require.NoError(t, err)
		assert.Equal(t, page.ID, found.ID)
		assert.Equal(t, source.ID, found.SourceID)
		assert.Equal(t, "劳动合同法", found.Title)
		assert.Equal(t, "## 第一章 总则", found.Content)
		assert.Equal(t, page.ContentHash, found.ContentHash)
		assert.Equal(t, 3, found.Position)
		assert.True(t, fetched.Equal(found.FetchedAt))
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		_, err := svc.FindPageByURL(context.Background(), "https://example.com/none")

		require.Error(t, err)
		assert.Equal(t, legalrights.ENOTFOUND, legalrights.ErrorCode(err))
	})
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	t.Run("orders by position and filters by source", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		sources := sqlite.NewSourceService(db)
		a := createSource(t, sources, "https://example.com/a", "")
		b := createSource(t, sources, "https://example.com/b", "")
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		require.NoError(t, svc.SavePage(ctx, &legalrights.Page{SourceID: b.ID, URL: b.URL, Position: 1}))
		require.NoError(t, svc.SavePage(ctx, &legalrights.Page{SourceID: a.ID, URL: a.URL, Position: 0}))

		pages, err := svc.FindPages(ctx, legalrights.PageFilter{})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, a.URL, pages[0].URL)
		assert.Equal(t, b.URL, pages[1].URL)

		pages, err = svc.FindPages(ctx, legalrights.PageFilter{SourceID: &b.ID})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, b.URL, pages[0].URL)
	})

	t.Run("returns nothing for an empty cache", func(t *testing.T) {
		t.Parallel()

		pages, err := sqlite.NewPageService(setupTestDB(t)).FindPages(context.Background(), legalrights.PageFilter{})

		require.NoError(t, err)
		assert.Empty(t, pages)
	})
}

func TestPageService_DeletePagesBySource(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	sources := sqlite.NewSourceService(db)
	a := createSource(t, sources, "https://example.com/a", "")
	b := createSource(t, sources, "https://example.com/b", "")
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	require.NoError(t, svc.SavePage(ctx, &legalrights.Page{SourceID: a.ID, URL: a.URL}))
	require.NoError(t, svc.SavePage(ctx, &legalrights.Page{SourceID: b.ID, URL: b.URL}))

	require.NoError(t, svc.DeletePagesBySource(ctx, a.ID))

	pages, err := svc.FindPages(ctx, legalrights.PageFilter{})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, b.URL, pages[0].URL)
}
