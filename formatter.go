package legalrights

import (
	"fmt"
	"strings"
)

// FormatContext formats retrieved chunks as a context block for a
// generation prompt. Each chunk gets a header with its score and, when it
// has one, its section title in brackets.
// Returns "" when there are no results.
func FormatContext(results []*SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		var section string
		if r.Chunk.SectionTitle != "" {
			section = "[" + r.Chunk.SectionTitle + "]"
		}
		parts = append(parts, fmt.Sprintf("### 参考文档 %d %s (相关度: %.2f)\n%s\n",
			i+1, section, r.Score, r.Chunk.Content))
	}

	return strings.Join(parts, "\n")
}

// Sources returns the distinct source URLs of results in rank order.
func Sources(results []*SearchResult) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, r := range results {
		if r.Chunk.SourceURL == "" || seen[r.Chunk.SourceURL] {
			continue
		}
		seen[r.Chunk.SourceURL] = true
		sources = append(sources, r.Chunk.SourceURL)
	}
	return sources
}
