package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/natmusissunny/legalrights"
	main "github.com/natmusissunny/legalrights/cmd/legalrights"
	"github.com/natmusissunny/legalrights/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	sources := &mock.SourceService{
		FindSourcesFn: func(_ context.Context, _ legalrights.SourceFilter) ([]*legalrights.Source, error) {
			return []*legalrights.Source{{ID: "src-1"}, {ID: "src-2"}}, nil
		},
	}
	pages := &mock.PageService{
		FindPagesFn: func(_ context.Context, _ legalrights.PageFilter) ([]*legalrights.Page, error) {
			return []*legalrights.Page{{ID: "page-1"}}, nil
		},
	}

	t.Run("reports unbuilt index", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Sources:   sources,
			Pages:     pages,
			Retriever: newRetriever(t, newUnbuiltIndex()),
		}

		err := (&main.StatsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Sources:      2")
		assert.Contains(t, stdout.String(), "Cached pages: 1")
		assert.Contains(t, stdout.String(), "not built")
	})

	t.Run("reports index summary", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Sources:   sources,
			Pages:     pages,
			Retriever: newRetriever(t, newReadyIndex()),
		}

		err := (&main.StatsCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "FlatL2, 3 chunks")
		assert.Contains(t, out, "static-ngram (dimension 256)")
		assert.Contains(t, out, "  - https://example.com/ldht")
		assert.Contains(t, out, "第二章 劳动合同的订立")
		assert.NotContains(t, out, "Placeholders")
	})
}
