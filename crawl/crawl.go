// Package crawl fetches source pages into the page cache. It coordinates
// deduplication, rate limited fetching, cleaning, content extraction,
// markdown conversion and storage.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources fetched in parallel.
const DefaultConcurrency = 4

// Crawler fetches sources and stores them as markdown pages.
//
// Extractors are tried in order; the first one returning non-empty content
// wins. When none does, the cleaned page itself is converted.
type Crawler struct {
	Fetcher      legalrights.Fetcher
	Cleaner      legalrights.Cleaner
	Extractors   []legalrights.Extractor
	Converter    legalrights.Converter
	Pages        legalrights.PageWriter
	TokenCounter legalrights.TokenCounter
	RateLimiter  legalrights.DomainLimiter
	Concurrency  int
	RetryDelays  []time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

// Result holds the outcome of a fetch run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
	Tokens  int
}

// ProgressEvent reports progress during a fetch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting fetch progress.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of processing a single source.
type fetchResult struct {
	position int
	source   *legalrights.Source
	title    string
	markdown string
	err      error
}

// FetchSources fetches every source and saves the resulting pages in
// source order. Sources whose URL was already seen in this run are
// skipped. Per-source failures are counted and reported through progress;
// only cancellation of ctx fails the run.
func (c *Crawler) FetchSources(ctx context.Context, sources []*legalrights.Source, progress ProgressFunc) (*Result, error) {
	var result Result

	seen := bloom.NewFilter(uint(max(len(sources), 1)), 0.01)
	unique := make([]*legalrights.Source, 0, len(sources))
	for _, s := range sources {
		if seen.TestAndAdd(s.URL) {
			result.Skipped++
			continue
		}
		unique = append(unique, s)
	}

	if len(unique) == 0 {
		return &result, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fetchResult, len(unique))

	var completed atomic.Int64
	total := len(unique)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range unique {
			g.Go(func() error {
				resultCh <- c.processSource(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]fetchResult, len(unique))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.source.URL,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}

		page := &legalrights.Page{
			SourceID:  r.source.ID,
			URL:       r.source.URL,
			Title:     r.title,
			Content:   r.markdown,
			Position:  r.position,
			FetchedAt: now().UTC(),
		}
		if err := c.Pages.SavePage(ctx, page); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:  ProgressFailed,
					Total: total,
					URL:   page.URL,
					Error: err,
				})
			}
			continue
		}

		result.Saved++
		result.Bytes += len(r.markdown)
		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, r.markdown); err == nil {
				result.Tokens += tokens
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// processSource fetches and converts a single source.
func (c *Crawler) processSource(ctx context.Context, position int, source *legalrights.Source) fetchResult {
	result := fetchResult{
		position: position,
		source:   source,
	}

	u, err := url.Parse(source.URL)
	if err != nil || u.Host == "" {
		result.err = legalrights.Errorf(legalrights.EINVALID, "invalid source URL %q", source.URL)
		return result
	}

	html, err := c.fetch(ctx, u.Host, source.URL)
	if err != nil {
		result.err = err
		return result
	}

	cleaned := html
	if c.Cleaner != nil {
		if cleaned, err = c.Cleaner.Clean(html); err != nil {
			result.err = err
			return result
		}
	}

	content, title := c.extract(cleaned)
	if content == "" {
		content = cleaned
	}

	markdown, err := c.Converter.Convert(content)
	if err != nil {
		result.err = err
		return result
	}
	if strings.TrimSpace(markdown) == "" {
		result.err = legalrights.Errorf(legalrights.EEMPTY, "no content extracted from %s", source.URL)
		return result
	}

	result.title = c.title(title, html, source)
	result.markdown = markdown
	return result
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// extract runs the extractor chain and returns the first non-empty
// content with its title.
func (c *Crawler) extract(html string) (content, title string) {
	for _, e := range c.Extractors {
		res, err := e.Extract(html)
		if err != nil || res == nil || strings.TrimSpace(res.ContentHTML) == "" {
			continue
		}
		return res.ContentHTML, strings.TrimSpace(res.Title)
	}
	return "", ""
}

// title picks the first non-empty of the extracted title, the title found
// in the raw page, the configured source title and DefaultDocumentTitle.
func (c *Crawler) title(extracted, html string, source *legalrights.Source) string {
	if extracted != "" {
		return extracted
	}
	if c.Cleaner != nil {
		if t := strings.TrimSpace(c.Cleaner.Title(html)); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(source.Title); t != "" {
		return t
	}
	return legalrights.DefaultDocumentTitle
}
