package main

import (
	"fmt"
	"strings"

	"github.com/natmusissunny/legalrights"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, legalrights.SourceFilter{})
	if err != nil {
		return err
	}
	pages, err := deps.Pages.FindPages(deps.Ctx, legalrights.PageFilter{})
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Sources:      %d\n", len(sources))
	fmt.Fprintf(deps.Stdout, "Cached pages: %d\n", len(pages))

	stats := deps.Retriever.Stats()
	if !stats.Indexed {
		fmt.Fprintln(deps.Stdout, "Index:        not built")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Index:        %s, %d chunks\n", stats.IndexType, stats.TotalDocuments)
	fmt.Fprintf(deps.Stdout, "Model:        %s (dimension %d)\n", stats.Model, stats.VectorDimension)
	if stats.Placeholders > 0 {
		fmt.Fprintf(deps.Stdout, "Placeholders: %d\n", stats.Placeholders)
	}
	fmt.Fprintf(deps.Stdout, "Documents:    %d\n", len(stats.Sources))
	for _, s := range stats.Sources {
		fmt.Fprintf(deps.Stdout, "  - %s\n", s)
	}
	fmt.Fprintf(deps.Stdout, "Sections:     %s\n", strings.Join(stats.Sections, ", "))

	return nil
}
