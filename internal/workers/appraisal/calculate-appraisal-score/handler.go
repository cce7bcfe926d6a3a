// internal/workers/appraisal/calculate-appraisal-score/handler.go
package calculateappraisalscore

import (
	"context"
	"database/sql"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
)

const (
	TaskType = "calculate-appraisal-score"
)

const updateScoreQuery = `
	UPDATE appraisals
	SET total_score = $1, grade = $2, updated_at = NOW()
	WHERE id = $3`

// Handler computes the weighted total score for a submitted appraisal form
// and persists it on the appraisal row.
type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
	if err := validateInput(input, h.config.WeightTolerance); err != nil {
		return nil, err
	}

	total := 0.0
	sectionScores := make([]SectionScore, 0, len(input.Sections))
	for _, section := range input.Sections {
		weighted := section.Weight * section.Rating
		total += weighted
		sectionScores = append(sectionScores, SectionScore{
			Name:     section.Name,
			Weight:   section.Weight,
			Rating:   section.Rating,
			Weighted: weighted,
		})
	}
	total = math.Round(total*100) / 100

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, errors.NewScoreCalculationFailedError("total score is not a finite number")
	}

	grade := gradeFor(total)

	if h.db != nil {
		result, err := h.db.ExecContext(ctx, updateScoreQuery, total, grade, input.AppraisalID)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return nil, errors.NewQueryTimeoutError("update-appraisal-score")
			}
			return nil, errors.NewQueryExecutionFailedError("update-appraisal-score", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("update-appraisal-score", err)
		}
		if affected == 0 {
			return nil, errors.NewAppraisalNotFoundError(input.AppraisalID)
		}
	}

	h.logger.Info("appraisal scored", map[string]interface{}{
		"appraisalId": input.AppraisalID,
		"totalScore":  total,
		"grade":       grade,
	})

	return &Output{
		AppraisalID:   input.AppraisalID,
		TotalScore:    total,
		Grade:         grade,
		SectionScores: sectionScores,
	}, nil
}

func gradeFor(total float64) string {
	switch {
	case total >= 90:
		return GradeOutstanding
	case total >= 75:
		return GradeExceeds
	case total >= 60:
		return GradeMeets
	case total >= 40:
		return GradeNeedsImprovement
	default:
		return GradeUnsatisfactory
	}
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
