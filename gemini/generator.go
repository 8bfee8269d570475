// Package gemini implements embedding, generation and token counting on
// the Google Gemini API.
package gemini

import (
	"context"

	"github.com/natmusissunny/legalrights"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Temperature used for answer generation.
const Temperature = 0.4

// Ensure Generator implements legalrights.Generator at compile time.
var _ legalrights.Generator = (*Generator)(nil)

// Generator implements legalrights.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
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

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(system),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", legalrights.Errorf(legalrights.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
