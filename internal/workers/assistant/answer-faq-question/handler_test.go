// internal/workers/assistant/answer-faq-question/handler_test.go
package answerfaqquestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraisal-workers/internal/assistant"
	"appraisal-workers/internal/assistant/compose"
	"appraisal-workers/internal/assistant/intent"
	"appraisal-workers/internal/assistant/retrieve"
	"appraisal-workers/internal/assistant/rewrite"
	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 3 * time.Second,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

type memoryCorpus struct {
	faqs []models.FaqRecord
}

func (c *memoryCorpus) ListActiveFAQs(ctx context.Context, role string) ([]models.FaqRecord, error) {
	var visible []models.FaqRecord
	for _, faq := range c.faqs {
		if faq.Active && faq.VisibleTo(role) {
			visible = append(visible, faq)
		}
	}
	return visible, nil
}

func createTestHandler(t *testing.T) *Handler {
	log := newTestLogger(t)
	corpus := &memoryCorpus{faqs: []models.FaqRecord{
		{
			ID:             "faq-deadline",
			Question:       "What is the due date for submitting my appraisal?",
			Answer:         "Appraisals are due on the last business day of the cycle.",
			RoleVisibility: models.RoleVisibilityAll,
			Active:         true,
		},
	}}

	service := assistant.NewService(
		intent.NewClassifier(intent.DefaultCatalog(), nil, log),
		rewrite.NewRewriter(nil),
		retrieve.NewRetriever(corpus, 0.3, 3, log),
		compose.NewComposer(compose.DefaultThresholds()),
		nil,
		log,
	)

	return NewHandler(createTestConfig(), service, log)
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "greeting answers with high confidence",
			input: &Input{Question: "hello", Role: models.RoleEmployee},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "greeting", output.Intent)
				assert.Equal(t, compose.LabelHigh, output.ConfidenceLabel)
				assert.Equal(t, compose.SourceAssistant, output.SourceLabel)
				assert.NotEmpty(t, output.AnswerText)
			},
		},
		{
			name:  "deadline question attaches the matching FAQ",
			input: &Input{Question: "When is the appraisal deadline?", Role: models.RoleEmployee},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "appraisal_deadline", output.Intent)
				require.NotNil(t, output.MatchedFaq)
				assert.Equal(t, "faq-deadline", output.MatchedFaq.ID)
			},
		},
		{
			name:  "unknown question degrades to clarification",
			input: &Input{Question: "xyzzy frobnicate quux", Role: models.RoleEmployee},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, intent.UnknownIntent, output.Intent)
				assert.Equal(t, compose.LabelLow, output.ConfidenceLabel)
				assert.Nil(t, output.MatchedFaq)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "nil input", input: nil},
		{name: "missing question", input: &Input{Role: models.RoleEmployee}},
		{name: "blank question", input: &Input{Question: "   ", Role: models.RoleEmployee}},
		{name: "missing role", input: &Input{Question: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)

			output, err := handler.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.Nil(t, output)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeValidationFailed, stdErr.Code)
		})
	}
}
