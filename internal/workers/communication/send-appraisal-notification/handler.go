// internal/workers/communication/send-appraisal-notification/handler.go
package sendappraisalnotification

import (
	"context"
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
	"appraisal-workers/internal/common/validation"
)

const (
	TaskType = "send-appraisal-notification"
)

// EmailSender matches aws.SESClient.SendSimpleEmail.
type EmailSender interface {
	SendSimpleEmail(ctx context.Context, from, to, subject, body string) (string, error)
}

// SMSSender matches aws.SNSClient.SendSMS.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) (string, error)
}

// Handler delivers appraisal lifecycle notifications over SES email or SNS
// SMS.
type Handler struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewHandler(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
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

	subject, body := renderTemplate(input)

	var messageID string
	var err error
	switch input.Channel {
	case ChannelEmail:
		messageID, err = h.email.SendSimpleEmail(ctx, h.config.FromEmail, input.Recipient, subject, body)
	case ChannelSMS:
		messageID, err = h.sms.SendSMS(ctx, input.Recipient, body)
	}
	if err != nil {
		return nil, errors.NewNotificationSendFailedError(input.Channel, err)
	}

	h.logger.Info("notification sent", map[string]interface{}{
		"channel":          input.Channel,
		"notificationType": input.NotificationType,
		"messageId":        messageID,
	})

	return &Output{
		MessageID: messageID,
		Channel:   input.Channel,
		Sent:      true,
	}, nil
}

func validateInput(input *Input) error {
	if input == nil {
		return errors.NewValidationFailedError("input cannot be nil")
	}
	if input.Channel != ChannelEmail && input.Channel != ChannelSMS {
		return errors.NewValidationFailedError(fmt.Sprintf("unknown channel %q", input.Channel))
	}
	if strings.TrimSpace(input.Recipient) == "" {
		return errors.NewValidationFailedError("recipient is required")
	}
	if input.Channel == ChannelEmail && !validation.ValidateEmail(input.Recipient) {
		return errors.NewValidationFailedError(fmt.Sprintf("invalid email address %q", input.Recipient))
	}
	if input.Channel == ChannelSMS && !validation.ValidatePhone(input.Recipient) {
		return errors.NewValidationFailedError(fmt.Sprintf("invalid phone number %q", input.Recipient))
	}
	switch input.NotificationType {
	case TypeAppraisalSubmitted, TypeReviewCompleted, TypeAppraisalRejected, TypeDeadlineReminder:
	default:
		return errors.NewValidationFailedError(fmt.Sprintf("unknown notification type %q", input.NotificationType))
	}
	return nil
}

func renderTemplate(input *Input) (subject, body string) {
	name := input.EmployeeName
	if name == "" {
		name = "there"
	}

	switch input.NotificationType {
	case TypeAppraisalSubmitted:
		subject = "Appraisal submitted"
		body = fmt.Sprintf("Hi %s, your appraisal for cycle %s was submitted and is now waiting for your supervisor's review.", name, input.Cycle)
	case TypeReviewCompleted:
		subject = "Your appraisal review is complete"
		body = fmt.Sprintf("Hi %s, your appraisal for cycle %s has been reviewed. Final grade: %s.", name, input.Cycle, input.Grade)
	case TypeAppraisalRejected:
		subject = "Your appraisal needs changes"
		body = fmt.Sprintf("Hi %s, your appraisal for cycle %s was sent back to draft. Please revise and resubmit it.", name, input.Cycle)
	case TypeDeadlineReminder:
		subject = "Appraisal deadline reminder"
		body = fmt.Sprintf("Hi %s, your appraisal for cycle %s is due on %s. Please submit it before the deadline.", name, input.Cycle, input.DueDate)
	}

	return subject, body
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
