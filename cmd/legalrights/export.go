package main

import (
	"fmt"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, legalrights.PageFilter{})
	if err != nil {
		return err
	}

	export := fs.NewExport(c.Dir)
	for _, p := range pages {
		if err := export.SavePage(deps.Ctx, p); err != nil {
			_ = export.Abort()
			return err
		}
	}
	if err := export.Commit(); err != nil {
		_ = export.Abort()
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", export.Count(), c.Dir)
	return nil
}
