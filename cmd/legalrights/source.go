package main

import (
	"fmt"

	"github.com/natmusissunny/legalrights"
)

// Run executes the source add command.
func (c *SourceAddCmd) Run(deps *Dependencies) error {
	source := &legalrights.Source{
		URL:      c.URL,
		Title:    c.Title,
		Category: c.Category,
	}
	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added source %s (%s)\n", source.URL, source.ID)
	return nil
}

// Run executes the source list command.
func (c *SourceListCmd) Run(deps *Dependencies) error {
	var filter legalrights.SourceFilter
	if c.Category != "" {
		filter.Category = &c.Category
	}

	sources, err := deps.Sources.FindSources(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'legalrights source add' to add one.")
		return nil
	}

	for _, s := range sources {
		fmt.Fprintf(deps.Stdout, "%s  %s", s.ID, s.URL)
		if s.Category != "" {
			fmt.Fprintf(deps.Stdout, "  [%s]", s.Category)
		}
		if s.Title != "" {
			fmt.Fprintf(deps.Stdout, "  %s", s.Title)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}

// Run executes the source delete command.
func (c *SourceDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Sources.DeleteSource(deps.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted source %s\n", c.ID)
	return nil
}
