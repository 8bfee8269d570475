package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/agent"
	"github.com/natmusissunny/legalrights/retrieve"
	"github.com/natmusissunny/legalrights/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", legalrights.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to the process
	// environment merged with the --env-file.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("legalrights"),
		kong.Description("Labour-law Q&A over a local knowledge base"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'legalrights --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	getenv := m.Getenv
	if getenv == nil {
		if getenv, err = Getenv(cli.EnvFile); err != nil {
			return err
		}
	}

	configPath, required := cli.ConfigFile, cli.ConfigFile != ""
	if !required {
		configPath = filepath.Join(DefaultDir(), "config.yaml")
	}
	cfg, err := LoadConfig(configPath, required, getenv)
	if err != nil {
		return err
	}
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
		return err
	}
	m.DB = sqlite.NewDB(cfg.Database)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %sDB to use a different database path\n", envPrefix)
		return fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
	}
	defer m.Close()

	deps.Sources = sqlite.NewSourceService(m.DB)
	deps.Pages = sqlite.NewPageService(m.DB)

	providers := &Providers{Config: cfg, Logger: logger}

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "fetch":
		fetcher, err := providers.Fetcher(cli.Fetch.Browser || cfg.Fetch.Browser)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		concurrency := cli.Fetch.Concurrency
		if concurrency <= 0 {
			concurrency = cfg.Fetch.Concurrency
		}
		deps.Crawler = providers.Crawler(fetcher, deps.Pages, concurrency)

	case "build":
		embedder, err := providers.Embedder(ctx)
		if err != nil {
			return err
		}
		deps.Index = providers.Index(embedder, stderr)

	case "search", "stats", "ask", "chat":
		embedder, err := providers.Embedder(ctx)
		if err != nil {
			return err
		}
		deps.Index = providers.Index(embedder, nil)
		if deps.Retriever, err = retrieve.New(deps.Index, cfg.IndexDir, logger); err != nil {
			return err
		}

		if cmd == "ask" || cmd == "chat" {
			generator, err := providers.Generator(ctx)
			if err != nil {
				return err
			}
			deps.Agent = agent.New(deps.Retriever, generator)
			deps.Agent.Logger = logger
			deps.Agent.TopK = cfg.Retrieval.TopK
			deps.Agent.VectorWeight = cfg.Retrieval.VectorWeight
		}
	}

	return kongCtx.Run(deps)
}
