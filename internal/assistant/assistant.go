// Package assistant wires the classification, rewriting, retrieval and
// composition stages into the question-answering service.
package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"appraisal-workers/internal/assistant/compose"
	"appraisal-workers/internal/assistant/intent"
	"appraisal-workers/internal/assistant/retrieve"
	"appraisal-workers/internal/assistant/rewrite"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
	"appraisal-workers/internal/models"
)

// InteractionLogger records answered questions for later analysis. Recording
// is best-effort; a failure never surfaces to the user.
type InteractionLogger interface {
	Record(ctx context.Context, rec models.InteractionRecord) error
}

// MatchedFAQ is the retrieval hit attached to an answer.
type MatchedFAQ struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Similarity float64 `json:"similarity"`
}

// Answer is the full result of answering one question.
type Answer struct {
	compose.ResponsePayload
	Intent       string            `json:"intent"`
	Confidence   float64           `json:"confidence"`
	Entities     map[string]string `json:"entities"`
	MatchedFAQ   *MatchedFAQ       `json:"matchedFaq,omitempty"`
	Alternatives []MatchedFAQ      `json:"alternatives,omitempty"`
}

// Service is the conversational assistant. Stages run strictly in sequence:
// classify, rewrite, retrieve, compose, record.
type Service struct {
	classifier   *intent.Classifier
	rewriter     *rewrite.Rewriter
	retriever    *retrieve.Retriever
	composer     *compose.Composer
	interactions InteractionLogger
	logger       logger.Logger
}

func NewService(
	classifier *intent.Classifier,
	rewriter *rewrite.Rewriter,
	retriever *retrieve.Retriever,
	composer *compose.Composer,
	interactions InteractionLogger,
	log logger.Logger,
) *Service {
	return &Service{
		classifier:   classifier,
		rewriter:     rewriter,
		retriever:    retriever,
		composer:     composer,
		interactions: interactions,
		logger:       log,
	}
}

// AnswerQuestion runs the full pipeline for one question. Any panic in a
// stage is contained and converted into the fixed error response, so the
// caller always gets a well-formed answer.
func (s *Service) AnswerQuestion(ctx context.Context, question, role string) (answer Answer) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("answer pipeline panicked", map[string]interface{}{
				"role":  role,
				"panic": r,
			})
			answer = Answer{
				ResponsePayload: compose.ErrorResponse(),
				Intent:          intent.UnknownIntent,
				Entities:        map[string]string{},
			}
		}
	}()

	classification := s.classifier.Classify(question)
	variants := s.rewriter.Rewrite(question)
	outcome := s.retriever.Retrieve(ctx, variants, role, classification.Intent)
	payload := s.composer.Compose(classification.Intent, classification.Confidence)

	answer = Answer{
		ResponsePayload: payload,
		Intent:          classification.Intent,
		Confidence:      classification.Confidence,
		Entities:        classification.Entities,
	}

	if outcome.BestMatch != nil {
		answer.MatchedFAQ = &MatchedFAQ{
			ID:         outcome.BestMatch.FAQ.ID,
			Question:   outcome.BestMatch.FAQ.Question,
			Answer:     outcome.BestMatch.FAQ.Answer,
			Similarity: outcome.BestMatch.Similarity,
		}
		for _, alt := range outcome.Alternatives {
			answer.Alternatives = append(answer.Alternatives, MatchedFAQ{
				ID:         alt.FAQ.ID,
				Question:   alt.FAQ.Question,
				Answer:     alt.FAQ.Answer,
				Similarity: alt.Similarity,
			})
		}
	}

	metrics.AssistantQuestionsAnswered.WithLabelValues(payload.ConfidenceLabel, payload.SourceLabel).Inc()

	s.record(ctx, question, role, answer)

	return answer
}

// record persists the interaction. Failures are logged and swallowed so the
// user-facing answer is never blocked on analytics.
func (s *Service) record(ctx context.Context, question, role string, answer Answer) {
	if s.interactions == nil {
		return
	}

	rec := models.InteractionRecord{
		ID:             uuid.New().String(),
		Role:           role,
		Question:       question,
		MatchedIntent:  answer.Intent,
		Confidence:     answer.Confidence,
		ResponseSource: answer.SourceLabel,
		Timestamp:      time.Now().UTC(),
	}

	if err := s.interactions.Record(ctx, rec); err != nil {
		s.logger.Warn("failed to record interaction", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
	}
}
