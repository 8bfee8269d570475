package mock

import (
	"context"

	"github.com/natmusissunny/legalrights"
)

var _ legalrights.Asker = (*Asker)(nil)

// Asker is a mock implementation of legalrights.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*legalrights.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*legalrights.Answer, error) {
	return a.AskFn(ctx, question)
}

var _ legalrights.Generator = (*Generator)(nil)

// Generator is a mock implementation of legalrights.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, system, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return g.GenerateFn(ctx, system, prompt)
}
