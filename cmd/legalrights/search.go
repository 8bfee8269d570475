package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/retrieve"
)

// snippetRunes is the length of the content preview printed per result.
const snippetRunes = 120

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if !deps.Retriever.Ready() {
		fmt.Fprintln(deps.Stderr, "Index not built. Run 'legalrights build' first.")
		return nil
	}

	topK := c.TopK
	if topK <= 0 {
		topK = deps.Config.Retrieval.TopK
	}

	// Section and score filters only apply to plain vector retrieval.
	if c.Hybrid || len(c.Keyword) > 0 {
		if c.Section != "" {
			return legalrights.Errorf(legalrights.EINVALID, "--section only applies to vector search, not to --hybrid or --keyword")
		}
		if c.MinScore > 0 {
			return legalrights.Errorf(legalrights.EINVALID, "--min-score only applies to vector search, not to --hybrid or --keyword")
		}
	}

	if len(c.Keyword) > 0 && !c.Hybrid {
		chunks := deps.Retriever.RetrieveByKeyword(c.Keyword, topK)
		if len(chunks) == 0 {
			fmt.Fprintln(deps.Stdout, "No results.")
		}
		for i, chunk := range chunks {
			printResult(deps.Stdout, i+1, chunk, "")
		}
		return nil
	}

	var (
		results []*legalrights.SearchResult
		err     error
	)
	if c.Hybrid {
		keywords := c.Keyword
		if len(keywords) == 0 {
			keywords = legalrights.ExtractKeywords(c.Query)
		}
		weight := c.Weight
		if weight < 0 {
			weight = deps.Config.Retrieval.VectorWeight
		}
		results, err = deps.Retriever.HybridRetrieve(deps.Ctx, c.Query, keywords, topK, weight)
	} else {
		minScore := c.MinScore
		if minScore < 0 {
			minScore = deps.Config.Retrieval.MinScore
		}
		results, err = deps.Retriever.Retrieve(deps.Ctx, c.Query, retrieve.Options{
			TopK:     topK,
			MinScore: minScore,
			Section:  c.Section,
		})
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
	}
	for i, r := range results {
		printResult(deps.Stdout, i+1, r.Chunk, fmt.Sprintf(" (%.2f)", r.Score))
	}
	return nil
}

func printResult(w io.Writer, rank int, chunk *legalrights.Chunk, score string) {
	fmt.Fprintf(w, "%d. [%s]%s %s\n", rank, chunk.SectionTitle, score, chunk.SourceURL)
	fmt.Fprintf(w, "   %s\n", snippet(chunk.Content, snippetRunes))
}

// snippet flattens text onto one line and truncates it to n runes.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
