package main

import (
	"fmt"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/crawl"
)

// urlDisplayWidth is the width URLs are truncated to in progress output.
const urlDisplayWidth = 60

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, legalrights.SourceFilter{})
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources to fetch. Use 'legalrights source add' to add one.")
		return nil
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d sources\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, urlDisplayWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.TruncateURL(event.URL, urlDisplayWidth), legalrights.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Crawler.FetchSources(deps.Ctx, sources, progress)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, crawl.Summary(result))

	return nil
}
