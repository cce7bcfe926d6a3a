// internal/workers/appraisal/update-appraisal-status/models.go
package updateappraisalstatus

type Input struct {
	AppraisalID string `json:"appraisalId"`
	NewStatus   string `json:"newStatus"`
	// ActorRole is recorded for the audit trail; transitions themselves are
	// role-agnostic because the process model gates who reaches this task.
	ActorRole string `json:"actorRole,omitempty"`
}

type Output struct {
	AppraisalID    string `json:"appraisalId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
}
