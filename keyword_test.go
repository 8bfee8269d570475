package legalrights_test

import (
	"testing"

	"github.com/natmusissunny/legalrights"
	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	t.Parallel()

	t.Run("finds terms in list order", func(t *testing.T) {
		t.Parallel()

		keywords := legalrights.ExtractKeywords("被辞退后如何申请劳动仲裁并拿到经济补偿？")

		assert.Equal(t, []string{"经济补偿", "辞退", "劳动仲裁"}, keywords)
	})

	t.Run("matches latin terms case-insensitively", func(t *testing.T) {
		t.Parallel()

		keywords := legalrights.ExtractKeywords("n+1 怎么算")

		assert.Equal(t, []string{"N+1"}, keywords)
	})

	t.Run("extracts statute references", func(t *testing.T) {
		t.Parallel()

		keywords := legalrights.ExtractKeywords("《劳动合同法》第47条和第四十六条")

		assert.Equal(t, []string{"《劳动合同法》第47条", "第四十六条"}, keywords)
	})

	t.Run("returns nothing for unrelated text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, legalrights.ExtractKeywords("今天天气不错"))
	})
}
