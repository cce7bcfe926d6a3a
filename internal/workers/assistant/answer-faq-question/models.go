// internal/workers/assistant/answer-faq-question/models.go
package answerfaqquestion

import (
	"appraisal-workers/internal/assistant"
	"appraisal-workers/internal/assistant/compose"
)

type Input struct {
	Question string `json:"question"`
	Role     string `json:"role"`
}

type Output struct {
	AnswerText      string                   `json:"answerText"`
	ConfidenceLabel string                   `json:"confidenceLabel"`
	SourceLabel     string                   `json:"sourceLabel"`
	Intent          string                   `json:"intent"`
	Confidence      float64                  `json:"confidence"`
	Entities        map[string]string        `json:"entities,omitempty"`
	SuggestedAction *compose.SuggestedAction `json:"suggestedAction,omitempty"`
	MatchedFaq      *assistant.MatchedFAQ    `json:"matchedFaq,omitempty"`
	Alternatives    []assistant.MatchedFAQ   `json:"alternatives,omitempty"`
}
