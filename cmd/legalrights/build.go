package main

import (
	"fmt"

	"github.com/natmusissunny/legalrights"
)

// Run executes the build command: every cached page is parsed into a
// structured document and the index is rebuilt from scratch and saved.
func (c *BuildCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, legalrights.PageFilter{})
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return legalrights.Errorf(legalrights.EEMPTY, "no cached pages. Run 'legalrights fetch' first")
	}

	sources, err := deps.Sources.FindSources(deps.Ctx, legalrights.SourceFilter{})
	if err != nil {
		return err
	}
	categories := make(map[string]string, len(sources))
	for _, s := range sources {
		categories[s.ID] = s.Category
	}

	docs := make([]*legalrights.Document, 0, len(pages))
	for _, p := range pages {
		doc := legalrights.ParseMarkdown(p.URL, p.Title, p.Content, p.FetchedAt)
		doc.Category = categories[p.SourceID]
		docs = append(docs, doc)
	}

	fmt.Fprintf(deps.Stdout, "Building index from %d documents\n", len(docs))

	if err := deps.Index.Build(deps.Ctx, docs); err != nil {
		return err
	}
	if err := deps.Index.Save(deps.Config.IndexDir); err != nil {
		return err
	}

	stats := deps.Index.Stats()
	fmt.Fprintf(deps.Stdout, "Indexed %d chunks (dimension %d, model %s) into %s\n",
		stats.TotalDocuments, stats.VectorDimension, stats.Model, deps.Config.IndexDir)
	if stats.Placeholders > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d chunks could not be embedded and were stored as zero vectors. "+
			"They can still appear in search results with scores unrelated to the query. Rebuild to retry.\n", stats.Placeholders)
	}

	return nil
}
