// internal/workers/assistant/answer-faq-question/handler.go
package answerfaqquestion

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"appraisal-workers/internal/assistant"
	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
)

const (
	TaskType = "answer-faq-question"
)

// Handler answers one FAQ question per job by running the assistant
// pipeline against the caller's role.
type Handler struct {
	config  *Config
	service *assistant.Service
	logger  logger.Logger
}

func NewHandler(config *Config, service *assistant.Service, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, errors.NewValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	answer := h.service.AnswerQuestion(ctx, input.Question, input.Role)

	return &Output{
		AnswerText:      answer.AnswerText,
		ConfidenceLabel: answer.ConfidenceLabel,
		SourceLabel:     answer.SourceLabel,
		Intent:          answer.Intent,
		Confidence:      answer.Confidence,
		Entities:        answer.Entities,
		SuggestedAction: answer.SuggestedAction,
		MatchedFaq:      answer.MatchedFAQ,
		Alternatives:    answer.Alternatives,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	code := "UNKNOWN_ERROR"
	retries := int32(0)

	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		code = string(stdErr.Code)
		retries = int32(errors.GetRetryCount(stdErr.Code))
	}

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"errorCode": code,
		"error":     err.Error(),
		"retries":   retries,
	})

	if _, sendErr := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(fmt.Sprintf("[%s] %s", code, err.Error())).
		Send(context.Background()); sendErr != nil {
		h.logger.Error("failed to send fail job command", map[string]interface{}{
			"error": sendErr,
		})
	}
}

// Execute exposes the business logic for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
