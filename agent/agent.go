// Package agent answers questions by retrieving relevant chunks, prompting
// a generator with them and tracking the conversation.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/natmusissunny/legalrights"
	"github.com/natmusissunny/legalrights/retrieve"
)

// historyTurns is how many previous turns are quoted in a prompt.
const historyTurns = 3

// Ensure Agent implements legalrights.Asker at compile time.
var _ legalrights.Asker = (*Agent)(nil)

// Agent answers questions over the indexed corpus.
type Agent struct {
	Retriever    *retrieve.Retriever
	Generator    legalrights.Generator
	Conversation *Conversation
	Logger       *slog.Logger

	// TopK is the number of chunks quoted in the prompt.
	TopK int
	// VectorWeight balances vector and keyword scores in hybrid retrieval.
	VectorWeight float64

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// New returns an Agent with default retrieval settings and a fresh
// conversation.
func New(retriever *retrieve.Retriever, generator legalrights.Generator) *Agent {
	return &Agent{
		Retriever:    retriever,
		Generator:    generator,
		Conversation: NewConversation(DefaultMaxTurns),
		TopK:         retrieve.DefaultTopK,
		VectorWeight: retrieve.DefaultVectorWeight,
	}
}

// Ask answers question and records the turn in the conversation.
// Retrieval failures degrade to an answer without references;
// generation failures are returned.
func (a *Agent) Ask(ctx context.Context, question string) (*legalrights.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, legalrights.Errorf(legalrights.EINVALID, "question required")
	}

	typ := legalrights.ClassifyQuestion(question)
	results := a.retrieve(ctx, question)

	var history []legalrights.Turn
	if a.Conversation != nil {
		history = a.Conversation.History(historyTurns)
	}

	prompt := legalrights.BuildPrompt(question, results, typ, history)
	text, err := a.Generator.Generate(ctx, legalrights.SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	answer := &legalrights.Answer{
		Question:   question,
		Text:       legalrights.EnsureDisclaimer(text),
		Type:       typ,
		Results:    results,
		Confidence: legalrights.Confidence(results, typ),
		Sources:    legalrights.Sources(results),
		CreatedAt:  a.now(),
	}

	if a.Conversation != nil {
		a.Conversation.AddTurn(question, answer)
	}
	return answer, nil
}

// retrieve runs hybrid retrieval when the question names legal terms and
// plain vector retrieval otherwise.
func (a *Agent) retrieve(ctx context.Context, question string) []*legalrights.SearchResult {
	topK := a.TopK
	if topK <= 0 {
		topK = retrieve.DefaultTopK
	}

	var (
		results []*legalrights.SearchResult
		err     error
	)
	if keywords := legalrights.ExtractKeywords(question); len(keywords) > 0 {
		results, err = a.Retriever.HybridRetrieve(ctx, question, keywords, topK, a.VectorWeight)
	} else {
		results, err = a.Retriever.Retrieve(ctx, question, retrieve.Options{TopK: topK})
	}
	if err != nil {
		if ctx.Err() == nil {
			a.logger().Warn("retrieval failed, answering without references", "question", question, "err", err)
		}
		return nil
	}
	return results
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Agent) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
