package legalrights_test

import (
	"testing"

	"github.com/natmusissunny/legalrights"
	"github.com/stretchr/testify/assert"
)

func TestFormatContext(t *testing.T) {
	t.Parallel()

	t.Run("formats single result with section and score", func(t *testing.T) {
		t.Parallel()

		results := []*legalrights.SearchResult{
			{Chunk: &legalrights.Chunk{SectionTitle: "经济补偿", Content: "每满一年支付一个月工资。"}, Score: 0.876},
		}

		result := legalrights.FormatContext(results)

		expected := "### 参考文档 1 [经济补偿] (相关度: 0.88)\n每满一年支付一个月工资。\n"
		assert.Equal(t, expected, result)
	})

	t.Run("joins multiple results with a newline", func(t *testing.T) {
		t.Parallel()

		results := []*legalrights.SearchResult{
			{Chunk: &legalrights.Chunk{SectionTitle: "A", Content: "one"}, Score: 1},
			{Chunk: &legalrights.Chunk{SectionTitle: "B", Content: "two"}, Score: 0.5},
		}

		result := legalrights.FormatContext(results)

		expected := "### 参考文档 1 [A] (相关度: 1.00)\none\n\n### 参考文档 2 [B] (相关度: 0.50)\ntwo\n"
		assert.Equal(t, expected, result)
	})

	t.Run("omits the brackets for a chunk without section", func(t *testing.T) {
		t.Parallel()

		results := []*legalrights.SearchResult{
			{Chunk: &legalrights.Chunk{Content: "劳动合同法"}, Score: 0.5},
		}

		result := legalrights.FormatContext(results)

		assert.Equal(t, "### 参考文档 1  (相关度: 0.50)\n劳动合同法\n", result)
		assert.NotContains(t, result, "[]")
	})

	t.Run("returns empty string for no results", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, legalrights.FormatContext(nil))
	})
}

func TestSources(t *testing.T) {
	t.Parallel()

	results := []*legalrights.SearchResult{
		{Chunk: &legalrights.Chunk{SourceURL: "https://b"}},
		{Chunk: &legalrights.Chunk{SourceURL: "https://a"}},
		{Chunk: &legalrights.Chunk{SourceURL: "https://b"}},
		{Chunk: &legalrights.Chunk{}},
	}

	assert.Equal(t, []string{"https://b", "https://a"}, legalrights.Sources(results))
}
