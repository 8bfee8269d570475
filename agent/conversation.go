package agent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/natmusissunny/legalrights"
)

// DefaultMaxTurns bounds the history kept by a Conversation.
const DefaultMaxTurns = 10

// ConversationTurn is one answered question.
type ConversationTurn struct {
	Question string
	Answer   *legalrights.Answer
}

// Conversation is a bounded, in-memory question and answer history.
// It is safe for concurrent use.
type Conversation struct {
	// MaxTurns is the number of turns retained; older turns are dropped.
	MaxTurns int

	mu    sync.Mutex
	turns []ConversationTurn
}

// NewConversation returns an empty conversation keeping maxTurns turns.
func NewConversation(maxTurns int) *Conversation {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Conversation{MaxTurns: maxTurns}
}

// AddTurn records an answered question.
func (c *Conversation) AddTurn(question string, answer *legalrights.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns = append(c.turns, ConversationTurn{Question: question, Answer: answer})
	if limit := c.maxTurns(); len(c.turns) > limit {
		c.turns = append([]ConversationTurn(nil), c.turns[len(c.turns)-limit:]...)
	}
}

func (c *Conversation) maxTurns() int {
	if c.MaxTurns <= 0 {
		return DefaultMaxTurns
	}
	return c.MaxTurns
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// Recent returns the last n turns, oldest first.
func (c *Conversation) Recent(n int) []ConversationTurn {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 {
		return nil
	}
	start := max(0, len(c.turns)-n)
	out := make([]ConversationTurn, len(c.turns)-start)
	copy(out, c.turns[start:])
	return out
}

// History returns the last n turns as prompt history.
func (c *Conversation) History(n int) []legalrights.Turn {
	recent := c.Recent(n)
	history := make([]legalrights.Turn, 0, len(recent))
	for _, t := range recent {
		var text string
		if t.Answer != nil {
			text = t.Answer.Text
		}
		history = append(history, legalrights.Turn{Question: t.Question, Answer: text})
	}
	return history
}

// Reset clears the history.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
}

// Summary describes the conversation: turn count, question types seen
// and the last three questions.
func (c *Conversation) Summary() string {
	recent := c.Recent(3)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.turns) == 0 {
		return "暂无对话历史"
	}

	var types []string
	seen := make(map[legalrights.QuestionType]bool)
	for _, t := range c.turns {
		if t.Answer == nil || seen[t.Answer.Type] {
			continue
		}
		seen[t.Answer.Type] = true
		types = append(types, string(t.Answer.Type))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "对话轮数: %d\n", len(c.turns))
	fmt.Fprintf(&sb, "问题类型: %s\n", strings.Join(types, ", "))
	sb.WriteString("\n最近问题:")
	for i, t := range recent {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, t.Question)
	}
	return sb.String()
}
