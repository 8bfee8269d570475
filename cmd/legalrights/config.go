package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/natmusissunny/legalrights"
	"gopkg.in/yaml.v3"
)

// Provider names.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderStatic = "static"
)

// envPrefix prefixes every configuration environment variable.
const envPrefix = "LEGALRIGHTS_"

// Config holds the program configuration.
//
// Values are layered: built-in defaults, then the YAML file, then the
// environment (including a .env file).
type Config struct {
	Database string `yaml:"database"`
	IndexDir string `yaml:"index_dir"`

	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Fetch     FetchConfig     `yaml:"fetch"`

	OllamaHost   string `yaml:"ollama_host"`
	GeminiAPIKey string `yaml:"-"`
}

// EmbeddingConfig selects the embedding provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
	CacheSize int    `yaml:"cache_size"`
	// RequestsPerSecond paces embedding batches during build; 0 disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// LLMConfig selects the answer generator.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// ChunkConfig configures the chunker, in characters.
type ChunkConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures search and ask.
type RetrievalConfig struct {
	TopK         int     `yaml:"top_k"`
	MinScore     float64 `yaml:"min_score"`
	VectorWeight float64 `yaml:"vector_weight"`
}

// FetchConfig configures the crawler.
type FetchConfig struct {
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	Browser           bool          `yaml:"browser"`
	// CountTokens reports Gemini token counts for fetched pages.
	CountTokens bool `yaml:"count_tokens"`
}

// DefaultConfig returns the built-in configuration rooted at dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		Database: filepath.Join(dir, "legalrights.db"),
		IndexDir: filepath.Join(dir, "vectors"),
		Embedding: EmbeddingConfig{
			Provider:  ProviderAuto,
			CacheSize: 1000,
		},
		LLM: LLMConfig{
			Provider: ProviderAuto,
		},
		Chunk: ChunkConfig{
			Size:    legalrights.DefaultChunkSize,
			Overlap: legalrights.DefaultChunkOverlap,
		},
		Retrieval: RetrievalConfig{
			TopK:         5,
			MinScore:     0,
			VectorWeight: 0.7,
		},
		Fetch: FetchConfig{
			Concurrency:       4,
			RequestsPerSecond: 4,
			Timeout:           30 * time.Second,
			CountTokens:       true,
		},
	}
}

// DefaultDir returns ~/.legalrights, or the working directory when the
// home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".legalrights"
	}
	return filepath.Join(home, ".legalrights")
}

// LoadConfig builds the configuration. path names a YAML file; a missing
// file is an error only when required is set. getenv supplies environment
// values.
func LoadConfig(path string, required bool, getenv func(string) string) (*Config, error) {
	dir := DefaultDir()
	if v := getenv(envPrefix + "HOME"); v != "" {
		dir = v
	}
	cfg := DefaultConfig(dir)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, legalrights.Errorf(legalrights.ECONFIG, "read config %s: %v", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, legalrights.Errorf(legalrights.ECONFIG, "parse config %s: %v", path, err)
			}
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Getenv returns an environment lookup that falls back to the variables
// in the .env file at path. Real environment variables win.
func Getenv(path string) (func(string) string, error) {
	dotenv, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		dotenv = map[string]string{}
	} else if err != nil {
		return nil, legalrights.Errorf(legalrights.ECONFIG, "read %s: %v", path, err)
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(envPrefix + name)); v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v := strings.TrimSpace(getenv(envPrefix + name))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return legalrights.Errorf(legalrights.ECONFIG, "%s%s: %q is not an integer", envPrefix, name, v)
		}
		*dst = n
		return nil
	}
	float := func(name string, dst *float64) error {
		v := strings.TrimSpace(getenv(envPrefix + name))
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return legalrights.Errorf(legalrights.ECONFIG, "%s%s: %q is not a number", envPrefix, name, v)
		}
		*dst = f
		return nil
	}

	boolean := func(name string, dst *bool) error {
		v := strings.TrimSpace(getenv(envPrefix + name))
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return legalrights.Errorf(legalrights.ECONFIG, "%s%s: %q is not a boolean", envPrefix, name, v)
		}
		*dst = b
		return nil
	}

	str("DB", &c.Database)
	str("INDEX_DIR", &c.IndexDir)
	str("EMBEDDING_PROVIDER", &c.Embedding.Provider)
	str("EMBEDDING_MODEL", &c.Embedding.Model)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_MODEL", &c.LLM.Model)
	str("OLLAMA_HOST", &c.OllamaHost)

	for _, err := range []error{
		integer("EMBEDDING_DIMENSION", &c.Embedding.Dimension),
		integer("CHUNK_SIZE", &c.Chunk.Size),
		integer("CHUNK_OVERLAP", &c.Chunk.Overlap),
		integer("TOP_K", &c.Retrieval.TopK),
		integer("CONCURRENCY", &c.Fetch.Concurrency),
		float("VECTOR_WEIGHT", &c.Retrieval.VectorWeight),
		float("MIN_SCORE", &c.Retrieval.MinScore),
		float("REQUESTS_PER_SECOND", &c.Fetch.RequestsPerSecond),
		boolean("BROWSER", &c.Fetch.Browser),
		boolean("COUNT_TOKENS", &c.Fetch.CountTokens),
	} {
		if err != nil {
			return err
		}
	}

	c.GeminiAPIKey = strings.TrimSpace(getenv("GEMINI_API_KEY"))
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = strings.TrimSpace(getenv("GOOGLE_API_KEY"))
	}
	return nil
}

// Validate returns ECONFIG if the configuration is unusable.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case ProviderAuto, ProviderGemini, ProviderOllama, ProviderStatic:
	default:
		return legalrights.Errorf(legalrights.ECONFIG, "unknown embedding provider %q", c.Embedding.Provider)
	}
	switch c.LLM.Provider {
	case ProviderAuto, ProviderGemini, ProviderOllama:
	default:
		return legalrights.Errorf(legalrights.ECONFIG, "unknown llm provider %q", c.LLM.Provider)
	}
	if c.Embedding.Provider == ProviderGemini && c.GeminiAPIKey == "" {
		return legalrights.Errorf(legalrights.ECONFIG, "GEMINI_API_KEY is required for the gemini embedding provider")
	}
	if c.Embedding.Dimension < 0 {
		return legalrights.Errorf(legalrights.ECONFIG, "embedding dimension must not be negative")
	}
	if err := legalrights.NewChunker(c.Chunk.Size, c.Chunk.Overlap).Validate(); err != nil {
		return err
	}
	if c.Retrieval.TopK <= 0 {
		return legalrights.Errorf(legalrights.ECONFIG, "top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.VectorWeight < 0 || c.Retrieval.VectorWeight > 1 {
		return legalrights.Errorf(legalrights.ECONFIG, "vector_weight must be in [0, 1], got %g", c.Retrieval.VectorWeight)
	}
	if c.Fetch.Concurrency <= 0 {
		return legalrights.Errorf(legalrights.ECONFIG, "fetch concurrency must be positive, got %d", c.Fetch.Concurrency)
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return legalrights.Errorf(legalrights.ECONFIG, "requests_per_second must not be negative")
	}
	return nil
}

// EmbeddingProvider resolves "auto" to gemini when an API key is present
// and to the offline static embedder otherwise.
func (c *Config) EmbeddingProvider() string {
	if c.Embedding.Provider != ProviderAuto {
		return c.Embedding.Provider
	}
	if c.GeminiAPIKey != "" {
		return ProviderGemini
	}
	return ProviderStatic
}

// LLMProvider resolves "auto" to gemini when an API key is present and to
// a local ollama server otherwise.
func (c *Config) LLMProvider() string {
	if c.LLM.Provider != ProviderAuto {
		return c.LLM.Provider
	}
	if c.GeminiAPIKey != "" {
		return ProviderGemini
	}
	return ProviderOllama
}
