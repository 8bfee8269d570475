package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/agent"
	"github.com/natmusissunny/legalrights/crawl"
	"github.com/natmusissunny/legalrights/retrieve"
)

// Dependencies holds all services and configuration for command execution.
// Main wires only what the selected command uses.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config *Config
	Logger *slog.Logger

	Sources legalrights.SourceService
	Pages   legalrights.PageService

	Crawler   *crawl.Crawler
	Index     legalrights.Index
	Retriever *retrieve.Retriever
	Agent     *agent.Agent
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile string `name:"config" type:"path" help:"YAML config file (default ~/.legalrights/config.yaml)"`
	EnvFile    string `name:"env-file" default:".env" help:"Dotenv file with API keys"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Source SourceCmd `cmd:"" help:"Manage the pages fetched into the knowledge base"`
	Fetch  FetchCmd  `cmd:"" help:"Fetch all sources into the page cache"`
	Build  BuildCmd  `cmd:"" help:"Parse cached pages and build the vector index"`
	Search SearchCmd `cmd:"" help:"Search the knowledge base"`
	Ask    AskCmd    `cmd:"" help:"Ask a single question"`
	Chat   ChatCmd   `cmd:"" help:"Start an interactive conversation"`
	Stats  StatsCmd  `cmd:"" help:"Show knowledge base statistics"`
	Export ExportCmd `cmd:"" help:"Write cached pages as markdown files"`
}

// SourceCmd groups the source subcommands.
type SourceCmd struct {
	Add    SourceAddCmd    `cmd:"" help:"Add a source URL"`
	List   SourceListCmd   `cmd:"" help:"List sources"`
	Delete SourceDeleteCmd `cmd:"" help:"Delete a source and its cached page"`
}

// SourceAddCmd is the "source add" subcommand.
type SourceAddCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Title    string `short:"t" help:"Fallback title when the page has none"`
	Category string `short:"c" help:"Category recorded on the page's chunks"`
}

// SourceListCmd is the "source list" subcommand.
type SourceListCmd struct {
	Category string `short:"c" help:"Only list sources in this category"`
}

// SourceDeleteCmd is the "source delete" subcommand.
type SourceDeleteCmd struct {
	ID string `arg:"" help:"Source ID"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Concurrency int  `short:"c" help:"Concurrent fetch limit (default from config)"`
	Browser     bool `short:"b" help:"Render pages in a headless browser"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string   `arg:"" help:"Search query"`
	TopK     int      `short:"k" name:"top-k" help:"Number of results (default from config)"`
	MinScore float64  `name:"min-score" default:"-1" help:"Drop vector results scoring below this (default from config)"`
	Section  string   `short:"s" help:"Only return vector results from this section"`
	Keyword  []string `short:"w" help:"Keyword to match (repeatable); without --hybrid ranks by keywords only"`
	Hybrid   bool     `help:"Combine vector and keyword scores"`
	Weight   float64  `default:"-1" help:"Vector weight for hybrid ranking (default from config)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
	TopK     int    `short:"k" name:"top-k" help:"Number of references (default from config)"`
	Verbose  bool   `name:"show-references" help:"Print the retrieved references"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" type:"path" help:"Output directory (replaced on success)"`
}
