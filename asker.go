package legalrights

import (
	"context"
	"strings"
	"time"
)

// Disclaimer is appended to every generated answer.
const Disclaimer = "**免责声明：本回答仅供参考，具体情况请咨询专业律师。**"

// QuestionType classifies a user question to steer prompting and confidence.
type QuestionType string

// QuestionType constants.
const (
	QuestionCalculation  QuestionType = "calculation"
	QuestionProcedure    QuestionType = "procedure"
	QuestionLegalBasis   QuestionType = "legal_basis"
	QuestionCompensation QuestionType = "compensation"
	QuestionGeneral      QuestionType = "general"
)

// questionRules are checked in order; the first matching rule wins.
var questionRules = []struct {
	typ      QuestionType
	keywords []string
}{
	{QuestionCalculation, []string{"计算", "多少钱", "金额", "算", "几个月"}},
	{QuestionProcedure, []string{"怎么办", "如何", "流程", "仲裁", "起诉", "维权"}},
	{QuestionLegalBasis, []string{"法律", "法规", "规定", "依据", "条文"}},
	{QuestionCompensation, []string{"补偿", "赔偿", "n+1", "2n"}},
}

// ClassifyQuestion returns the type of a question by keyword matching.
func ClassifyQuestion(question string) QuestionType {
	q := strings.ToLower(question)
	for _, rule := range questionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.typ
			}
		}
	}
	return QuestionGeneral
}

// Weight returns how far retrieval scores are trusted for this type.
func (t QuestionType) Weight() float64 {
	switch t {
	case QuestionLegalBasis:
		return 1.0
	case QuestionCompensation, QuestionProcedure:
		return 0.9
	case QuestionCalculation:
		return 0.85
	case QuestionGeneral:
		return 0.7
	}
	return 0.8
}

// Confidence blends retrieval scores into an answer confidence in [0, 1]:
// the mean score weighted by question type, or 0.5 without results.
func Confidence(results []*SearchResult, typ QuestionType) float64 {
	if len(results) == 0 {
		return 0.5
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	c := sum / float64(len(results)) * typ.Weight()
	return max(0, min(1, c))
}

// Answer is a generated answer grounded in retrieved chunks.
type Answer struct {
	Question   string          `json:"question"`
	Text       string          `json:"text"`
	Type       QuestionType    `json:"type"`
	Results    []*SearchResult `json:"results"`
	Confidence float64         `json:"confidence"`
	Sources    []string        `json:"sources"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Asker answers natural language questions over the indexed corpus.
type Asker interface {
	// Ask answers a question.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, question string) (*Answer, error)
}

// Generator produces text from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
