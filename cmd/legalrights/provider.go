package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/crawl"
	"github.com/natmusissunny/legalrights/flat"
	"github.com/natmusissunny/legalrights/gemini"
	"github.com/natmusissunny/legalrights/goquery"
	"github.com/natmusissunny/legalrights/htmltomarkdown"
	lrhttp "github.com/natmusissunny/legalrights/http"
	"github.com/natmusissunny/legalrights/lru"
	"github.com/natmusissunny/legalrights/ollama"
	"github.com/natmusissunny/legalrights/readability"
	"github.com/natmusissunny/legalrights/rod"
	lrslog "github.com/natmusissunny/legalrights/slog"
	"github.com/natmusissunny/legalrights/static"
	"github.com/natmusissunny/legalrights/trafilatura"
	"google.golang.org/genai"
)

// Providers lazily creates the external clients a command needs.
type Providers struct {
	Config *Config
	Logger *slog.Logger

	gemini *genai.Client
}

// geminiClient returns a shared Gemini client.
func (p *Providers) geminiClient(ctx context.Context) (*genai.Client, error) {
	if p.gemini != nil {
		return p.gemini, nil
	}
	if p.Config.GeminiAPIKey == "" {
		return nil, legalrights.Errorf(legalrights.ECONFIG,
			"GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.Config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to Gemini API: %w", err)
	}
	p.gemini = client
	return client, nil
}

// Embedder returns the configured embedder behind a query cache and a
// logging decorator.
func (p *Providers) Embedder(ctx context.Context) (legalrights.Embedder, error) {
	var embedder legalrights.Embedder
	switch p.Config.EmbeddingProvider() {
	case ProviderGemini:
		client, err := p.geminiClient(ctx)
		if err != nil {
			return nil, err
		}
		embedder = gemini.NewEmbedder(client,
			gemini.WithEmbeddingModel(p.Config.Embedding.Model),
			gemini.WithDimension(p.Config.Embedding.Dimension),
		)
	case ProviderOllama:
		client, err := ollama.NewClient(p.Config.OllamaHost, nil)
		if err != nil {
			return nil, err
		}
		embedder = ollama.NewEmbedder(client, p.Config.Embedding.Model, p.Config.Embedding.Dimension)
	default:
		embedder = static.NewEmbedder(p.Config.Embedding.Dimension)
	}

	embedder = lrslog.NewLoggingEmbedder(embedder, p.Logger)
	return lru.NewEmbedder(embedder, p.Config.Embedding.CacheSize), nil
}

// Generator returns the configured answer generator behind a logging
// decorator.
func (p *Providers) Generator(ctx context.Context) (legalrights.Generator, error) {
	var generator legalrights.Generator
	switch p.Config.LLMProvider() {
	case ProviderGemini:
		client, err := p.geminiClient(ctx)
		if err != nil {
			return nil, err
		}
		generator = gemini.NewGenerator(client, p.Config.LLM.Model)
	default:
		client, err := ollama.NewClient(p.Config.OllamaHost, nil)
		if err != nil {
			return nil, err
		}
		generator = ollama.NewGenerator(client, p.Config.LLM.Model)
	}
	return lrslog.NewLoggingGenerator(generator, p.Logger), nil
}

// Index returns an unloaded flat index over embedder behind a logging
// decorator. Embedding progress is written to progress when non-nil.
func (p *Providers) Index(embedder legalrights.Embedder, progress io.Writer) legalrights.Index {
	opts := []flat.Option{
		flat.WithChunker(legalrights.NewChunker(p.Config.Chunk.Size, p.Config.Chunk.Overlap)),
		flat.WithRateLimit(p.Config.Embedding.RequestsPerSecond),
		flat.WithLogger(p.Logger),
	}
	if progress != nil {
		opts = append(opts, flat.WithProgress(func(embedded, total int) {
			fmt.Fprintf(progress, "\r  embedded %d/%d chunks", embedded, total)
			if embedded == total {
				fmt.Fprintln(progress)
			}
		}))
	}
	return lrslog.NewLoggingIndex(flat.NewIndex(embedder, opts...), p.Logger)
}

// Fetcher returns the page fetcher: a headless browser when browser is
// set, a plain HTTP client otherwise.
func (p *Providers) Fetcher(browser bool) (legalrights.Fetcher, error) {
	var fetcher legalrights.Fetcher
	if browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(p.Config.Fetch.Timeout))
		if err != nil {
			return nil, fmt.Errorf("start browser (Chrome or Chromium must be installed): %w", err)
		}
		fetcher = f
	} else {
		fetcher = lrhttp.NewFetcher(lrhttp.WithTimeout(p.Config.Fetch.Timeout))
	}
	return lrslog.NewLoggingFetcher(fetcher, p.Logger), nil
}

// Crawler returns a crawler writing to pages. Fetch statistics omit
// tokens when counting is disabled or the tokenizer cannot be created.
func (p *Providers) Crawler(fetcher legalrights.Fetcher, pages legalrights.PageWriter, concurrency int) *crawl.Crawler {
	c := &crawl.Crawler{
		Fetcher: fetcher,
		Cleaner: goquery.NewCleaner(),
		Extractors: []legalrights.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
			goquery.NewExtractor(),
		},
		Converter:   htmltomarkdown.NewConverter(),
		Pages:       pages,
		RateLimiter: crawl.NewDomainLimiter(p.Config.Fetch.RequestsPerSecond),
		Concurrency: concurrency,
		Logger:      p.Logger,
	}
	if p.Config.Fetch.RequestsPerSecond <= 0 {
		c.RateLimiter = nil
	}
	if !p.Config.Fetch.CountTokens {
		return c
	}
	if tc, err := gemini.NewTokenCounter(""); err == nil {
		c.TokenCounter = tc
	} else {
		p.Logger.Warn("token counter unavailable", "err", err)
	}
	return c
}
