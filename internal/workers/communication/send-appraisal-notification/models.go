// internal/workers/communication/send-appraisal-notification/models.go
package sendappraisalnotification

// Notification channels.
const (
	ChannelEmail = "EMAIL"
	ChannelSMS   = "SMS"
)

// Notification types with built-in templates.
const (
	TypeAppraisalSubmitted = "APPRAISAL_SUBMITTED"
	TypeReviewCompleted    = "REVIEW_COMPLETED"
	TypeAppraisalRejected  = "APPRAISAL_REJECTED"
	TypeDeadlineReminder   = "DEADLINE_REMINDER"
)

type Input struct {
	Channel          string `json:"channel"`
	NotificationType string `json:"notificationType"`
	Recipient        string `json:"recipient"` // email address or E.164 phone number
	EmployeeName     string `json:"employeeName"`
	Cycle            string `json:"cycle,omitempty"`
	DueDate          string `json:"dueDate,omitempty"`
	Grade            string `json:"grade,omitempty"`
}

type Output struct {
	MessageID string `json:"messageId"`
	Channel   string `json:"channel"`
	Sent      bool   `json:"sent"`
}
