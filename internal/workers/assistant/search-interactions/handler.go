// internal/workers/assistant/search-interactions/handler.go
package searchinteractions

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
	"appraisal-workers/internal/repository"
)

const (
	TaskType = "search-interactions"
)

// InteractionSearcher is the slice of the interaction store this worker
// needs.
type InteractionSearcher interface {
	Search(ctx context.Context, filter repository.InteractionFilter) (*repository.SearchResult, error)
}

// Handler runs filtered interaction searches for HR reporting.
type Handler struct {
	config *Config
	store  InteractionSearcher
	logger logger.Logger
}

func NewHandler(config *Config, store InteractionSearcher, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  store,
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
	if err := validateInput(input); err != nil {
		return nil, err
	}

	size := input.Size
	if size > h.config.MaxSize {
		size = h.config.MaxSize
	}

	result, err := h.store.Search(ctx, repository.InteractionFilter{
		Role:   input.Role,
		Intent: input.Intent,
		Source: input.Source,
		From:   input.From,
		To:     input.To,
		Size:   size,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError("interactions")
		}
		return nil, err
	}

	return &Output{
		Interactions: result.Interactions,
		TotalHits:    result.TotalHits,
		Count:        len(result.Interactions),
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
