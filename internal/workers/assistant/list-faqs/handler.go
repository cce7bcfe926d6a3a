// internal/workers/assistant/list-faqs/handler.go
package listfaqs

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"appraisal-workers/internal/assistant/retrieve"
	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
)

const (
	TaskType = "list-faqs"
)

// Handler serves the browsable FAQ list for a role, the fallback surface
// behind the assistant's "Browse FAQs" action.
type Handler struct {
	config *Config
	corpus retrieve.Corpus
	logger logger.Logger
}

func NewHandler(config *Config, corpus retrieve.Corpus, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		corpus: corpus,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
	if input == nil {
		return nil, errors.NewValidationFailedError("input cannot be nil")
	}
	if strings.TrimSpace(input.Role) == "" {
		return nil, errors.NewValidationFailedError("role is required")
	}

	faqs, err := h.corpus.ListActiveFAQs(ctx, input.Role)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError("list-faqs")
		}
		return nil, err
	}

	entries := make([]FaqEntry, 0, len(faqs))
	for _, faq := range faqs {
		entries = append(entries, FaqEntry{
			ID:       faq.ID,
			Question: faq.Question,
			Answer:   faq.Answer,
		})
	}

	return &Output{
		Faqs:  entries,
		Count: len(entries),
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
