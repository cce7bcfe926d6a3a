// internal/workers/appraisal/update-appraisal-status/handler.go
package updateappraisalstatus

import (
	"context"
	"database/sql"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
	"appraisal-workers/internal/models"
)

const (
	TaskType = "update-appraisal-status"
)

// allowedTransitions is the appraisal lifecycle. REJECTED reopens the form
// for the employee, everything else only moves forward.
var allowedTransitions = map[string][]string{
	models.AppraisalStatusDraft:     {models.AppraisalStatusSubmitted},
	models.AppraisalStatusSubmitted: {models.AppraisalStatusInReview, models.AppraisalStatusRejected},
	models.AppraisalStatusInReview:  {models.AppraisalStatusCompleted, models.AppraisalStatusRejected},
	models.AppraisalStatusRejected:  {models.AppraisalStatusDraft},
	models.AppraisalStatusCompleted: {},
}

const selectStatusQuery = `SELECT status FROM appraisals WHERE id = $1`

const updateStatusQuery = `
	UPDATE appraisals
	SET status = $1, updated_at = NOW()
	WHERE id = $2 AND status = $3`

// Handler moves an appraisal through its lifecycle, enforcing the
// transition table against the current database state.
type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	errHandler *errors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	workerLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     workerLog,
		errHandler: errors.NewErrorHandler(workerLog),
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
	if strings.TrimSpace(input.AppraisalID) == "" {
		return nil, errors.NewValidationFailedError("appraisalId is required")
	}
	if _, known := allowedTransitions[input.NewStatus]; !known {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("unknown status %q", input.NewStatus))
	}

	var current string
	err := h.db.QueryRowContext(ctx, selectStatusQuery, input.AppraisalID).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, errors.NewAppraisalNotFoundError(input.AppraisalID)
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError("select-appraisal-status")
		}
		return nil, errors.NewQueryExecutionFailedError("select-appraisal-status", err)
	}

	if !transitionAllowed(current, input.NewStatus) {
		return nil, errors.NewInvalidStatusTransitionError(current, input.NewStatus)
	}

	result, err := h.db.ExecContext(ctx, updateStatusQuery, input.NewStatus, input.AppraisalID, current)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError("update-appraisal-status")
		}
		return nil, errors.NewQueryExecutionFailedError("update-appraisal-status", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("update-appraisal-status", err)
	}
	if affected == 0 {
		// Status moved between read and write; the retry re-reads it.
		return nil, errors.NewQueryExecutionFailedError("update-appraisal-status",
			fmt.Errorf("concurrent status change on appraisal %s", input.AppraisalID))
	}

	h.logger.Info("appraisal status updated", map[string]interface{}{
		"appraisalId": input.AppraisalID,
		"from":        current,
		"to":          input.NewStatus,
		"actorRole":   input.ActorRole,
	})

	return &Output{
		AppraisalID:    input.AppraisalID,
		PreviousStatus: current,
		Status:         input.NewStatus,
	}, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
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

// failJob routes through the shared error handler: retryable errors fail
// the job with retries, business errors (like a forbidden transition) throw
// a BPMN error the process can catch.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	code := "UNKNOWN_ERROR"
	var stdErr *errors.StandardError
	if goerrors.As(err, &stdErr) {
		code = string(stdErr.Code)
	}

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errHandler.HandleJobError(context.Background(), client, job, err)
}

// Execute exposes the business logic for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
