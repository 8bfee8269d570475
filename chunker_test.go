package legalrights_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/natmusissunny/legalrights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Parallel()

	t.Run("returns nothing for empty or whitespace input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, legalrights.ChunkText("", 512, 50))
		assert.Empty(t, legalrights.ChunkText(" \n\t ", 512, 50))
	})

	t.Run("returns trimmed text when it fits in one chunk", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("劳", 512)

		chunks := legalrights.ChunkText("  "+text+"\n", 512, 50)

		require.Len(t, chunks, 1)
		assert.Equal(t, text, chunks[0])
	})

	t.Run("advances by size minus overlap without punctuation", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 1000)

		chunks := legalrights.ChunkText(text, 200, 20)

		require.Len(t, chunks, 6)
		for _, c := range chunks[:5] {
			assert.Len(t, c, 200)
		}
		assert.Len(t, chunks[5], 100)
	})

	t.Run("cuts after the nearest sentence end in the second half of the window", func(t *testing.T) {
		t.Parallel()

		// Sentence end at rune 15 of a 20 rune window.
		text := strings.Repeat("甲", 14) + "。" + strings.Repeat("乙", 30)

		chunks := legalrights.ChunkText(text, 20, 0)

		require.NotEmpty(t, chunks)
		assert.Equal(t, strings.Repeat("甲", 14)+"。", chunks[0])
	})

	t.Run("ignores sentence ends in the first half of the window", func(t *testing.T) {
		t.Parallel()

		text := "甲。" + strings.Repeat("乙", 40)

		chunks := legalrights.ChunkText(text, 20, 0)

		require.NotEmpty(t, chunks)
		assert.Equal(t, 20, utf8.RuneCountInString(chunks[0]))
	})

	t.Run("measures size in characters not bytes", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("法", 300)

		chunks := legalrights.ChunkText(text, 100, 10)

		for _, c := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
		}
		assert.Len(t, chunks, 4)
	})

	t.Run("forces progress when overlap is not smaller than the cut", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", 50)

		chunks := legalrights.ChunkText(text, 10, 10)

		assert.Len(t, chunks, 5)
	})
}

func TestChunkText_Properties(t *testing.T) {
	t.Parallel()

	texts := []string{
		strings.Repeat("根据劳动合同法第四十六条的规定，用人单位应当支付经济补偿。", 40),
		strings.Repeat("Severance is one month per year. Really? Yes!\n", 30),
		strings.Repeat("无标点文本", 333),
	}

	for _, text := range texts {
		for _, params := range [][2]int{{512, 50}, {200, 20}, {64, 8}, {30, 0}} {
			size, overlap := params[0], params[1]
			chunks := legalrights.ChunkText(text, size, overlap)

			require.NotEmpty(t, chunks)
			for _, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), size)
				assert.NotEmpty(t, strings.TrimSpace(c))
			}
		}
	}
}

func TestChunkText_Overlap(t *testing.T) {
	t.Parallel()

	// No whitespace, so trimming never shortens the shared run.
	text := strings.Repeat("劳动者在该用人单位连续工作满十年的，应当订立无固定期限劳动合同。试用期工资不得低于约定工资的百分之八十！", 20)

	for _, params := range [][2]int{{512, 50}, {200, 20}, {64, 8}} {
		size, overlap := params[0], params[1]
		chunks := legalrights.ChunkText(text, size, overlap)

		require.Greater(t, len(chunks), 1)
		for i := 1; i < len(chunks); i++ {
			prev, next := []rune(chunks[i-1]), []rune(chunks[i])
			shared := string(next[:overlap])

			assert.True(t, strings.HasSuffix(chunks[i-1], shared),
				"size %d: chunk %d does not start with the last %d characters of chunk %d", size, i, overlap, i-1)
			assert.Greater(t, len(next), overlap, "size %d: chunk %d adds no new text", size, i)
			assert.Less(t, overlap, len(prev))
		}
	}
}

func TestChunker_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts defaults", func(t *testing.T) {
		t.Parallel()

		c := legalrights.NewChunker(legalrights.DefaultChunkSize, legalrights.DefaultChunkOverlap)

		assert.NoError(t, c.Validate())
	})

	t.Run("rejects overlap not smaller than size", func(t *testing.T) {
		t.Parallel()

		err := legalrights.NewChunker(100, 100).Validate()

		assert.Equal(t, legalrights.ECONFIG, legalrights.ErrorCode(err))
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		t.Parallel()

		err := legalrights.NewChunker(0, 0).Validate()

		assert.Equal(t, legalrights.ECONFIG, legalrights.ErrorCode(err))
	})
}

func newTestDocument() *legalrights.Document {
	tree := legalrights.NewSectionTree()
	ch1 := tree.Add(legalrights.NoSection, "第一章", 1, "总则内容。")
	tree.Add(ch1, "第一节", 2, "第一节内容。")
	tree.Add(ch1, "第二节", 2, "第二节内容。")
	tree.Add(legalrights.NoSection, "第二章", 1, "经济补偿内容。")

	return &legalrights.Document{
		URL:       "https://example.com/law",
		Title:     "劳动合同法",
		ScrapedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		Sections:  tree,
	}
}

func TestChunker_ChunkDocument(t *testing.T) {
	t.Parallel()

	t.Run("emits title chunk then sections in pre-order", func(t *testing.T) {
		t.Parallel()

		c := legalrights.NewChunker(512, 50)

		chunks := c.ChunkDocument(newTestDocument())

		require.Len(t, chunks, 5)
		ids := make([]string, 0, len(chunks))
		for _, ch := range chunks {
			ids = append(ids, ch.ID)
		}
		assert.Equal(t, []string{
			"https://example.com/law#title",
			"https://example.com/law/第一章#chunk0",
			"https://example.com/law/第一章/第一节#chunk0",
			"https://example.com/law/第一章/第二节#chunk0",
			"https://example.com/law/第二章#chunk0",
		}, ids)
	})

	t.Run("marks the title chunk", func(t *testing.T) {
		t.Parallel()

		c := legalrights.NewChunker(512, 50)

		chunks := c.ChunkDocument(newTestDocument())

		title := chunks[0]
		assert.Equal(t, "劳动合同法", title.Content)
		assert.Equal(t, legalrights.TitleSectionTitle, title.SectionTitle)
		assert.True(t, title.Metadata.IsTitle)
		assert.Equal(t, 0, title.Metadata.Level)
		assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), title.Metadata.ScrapedAt)
	})

	t.Run("skips title chunk when title is empty", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument()
		doc.Title = "  "

		chunks := legalrights.NewChunker(512, 50).ChunkDocument(doc)

		require.Len(t, chunks, 4)
		assert.False(t, chunks[0].Metadata.IsTitle)
	})

	t.Run("records level and chunk counts", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		tree.Add(legalrights.NoSection, "长章节", 2, strings.Repeat("x", 250))
		doc := &legalrights.Document{URL: "u", Sections: tree}

		chunks := legalrights.NewChunker(100, 0).ChunkDocument(doc)

		require.Len(t, chunks, 3)
		for i, ch := range chunks {
			assert.Equal(t, 2, ch.Metadata.Level)
			assert.Equal(t, i, ch.Metadata.ChunkIndex)
			assert.Equal(t, 3, ch.Metadata.TotalChunks)
			assert.Equal(t, "长章节", ch.SectionTitle)
			assert.Equal(t, "u", ch.SourceURL)
		}
	})

	t.Run("suffixes repeated section paths", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		tree.Add(legalrights.NoSection, "附则", 1, "一")
		tree.Add(legalrights.NoSection, "附则", 1, "二")
		doc := &legalrights.Document{URL: "u", Sections: tree}

		chunks := legalrights.NewChunker(100, 0).ChunkDocument(doc)

		require.Len(t, chunks, 2)
		assert.Equal(t, "u/附则#chunk0", chunks[0].ID)
		assert.Equal(t, "u/附则-1#chunk0", chunks[1].ID)
	})

	t.Run("terminates on cyclic section references", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		a := tree.Add(legalrights.NoSection, "A", 1, "a")
		b := tree.Add(a, "B", 2, "b")
		tree.Nodes[b].Children = append(tree.Nodes[b].Children, a)
		doc := &legalrights.Document{URL: "u", Sections: tree}

		chunks := legalrights.NewChunker(100, 0).ChunkDocument(doc)

		require.Len(t, chunks, 2)
		assert.Equal(t, "u/A#chunk0", chunks[0].ID)
		assert.Equal(t, "u/A/B#chunk0", chunks[1].ID)
	})

	t.Run("tags chunks with document category", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument()
		doc.Category = "law"

		chunks := legalrights.NewChunker(512, 50).ChunkDocument(doc)

		for _, ch := range chunks {
			assert.Equal(t, "law", ch.Metadata.Extra["category"])
		}
	})
}

func TestChunker_ChunkSection(t *testing.T) {
	t.Parallel()

	t.Run("chunks a subtree under the given base id", func(t *testing.T) {
		t.Parallel()

		doc := newTestDocument()

		chunks := legalrights.NewChunker(512, 50).ChunkSection(doc.Sections, 0, doc.URL, "")

		require.Len(t, chunks, 3)
		assert.Equal(t, "第一章#chunk0", chunks[0].ID)
		assert.Equal(t, "第一章/第一节#chunk0", chunks[1].ID)
		assert.Equal(t, "第一章/第二节#chunk0", chunks[2].ID)
	})
}

func TestChunker_ChunkDocuments(t *testing.T) {
	t.Parallel()

	first := newTestDocument()
	second := newTestDocument()
	second.URL = "https://example.com/other"

	chunks := legalrights.NewChunker(512, 50).ChunkDocuments([]*legalrights.Document{first, second})

	require.Len(t, chunks, 10)
	assert.Equal(t, "https://example.com/law#title", chunks[0].ID)
	assert.Equal(t, "https://example.com/other#title", chunks[5].ID)
}
