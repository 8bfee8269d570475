// Package ollama implements embedding and generation on a local Ollama
// server.
package ollama

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// Defaults for a local Ollama server.
const (
	DefaultHost               = "http://localhost:11434"
	DefaultEmbeddingModel     = "nomic-embed-text"
	DefaultEmbeddingDimension = 768
	DefaultModel              = "qwen2.5:7b"
)

// NewClient returns an Ollama API client for host. An empty host reads
// OLLAMA_HOST from the environment.
func NewClient(host string, httpClient *http.Client) (*api.Client, error) {
	if host == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("create ollama client from environment: %w", err)
		}
		return c, nil
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return api.NewClient(u, httpClient), nil
}
