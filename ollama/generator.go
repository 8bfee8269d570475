package ollama

import (
	"context"
	"fmt"

	"github.com/natmusissunny/legalrights"
	"github.com/ollama/ollama/api"
)

// Temperature used for answer generation.
const Temperature = 0.4

// Ensure Generator implements legalrights.Generator at compile time.
var _ legalrights.Generator = (*Generator)(nil)

// Generator implements legalrights.Generator with an Ollama model.
type Generator struct {
	client *api.Client
	model  string
}

// NewGenerator returns a Generator for model. An empty model selects
// DefaultModel.
func NewGenerator(client *api.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Generate answers prompt under the system instruction.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if prompt == "" {
		return "", legalrights.Errorf(legalrights.EINVALID, "prompt required")
	}

	req := &api.GenerateRequest{
		Model:   g.model,
		System:  system,
		Prompt:  prompt,
		Stream:  new(bool),
		Options: map[string]any{"temperature": Temperature},
	}

	var out string
	err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out += resp.Response
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out, nil
}
