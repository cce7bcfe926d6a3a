package models

import "time"

// Appraisal lifecycle statuses.
const (
	AppraisalStatusDraft     = "DRAFT"
	AppraisalStatusSubmitted = "SUBMITTED"
	AppraisalStatusInReview  = "IN_REVIEW"
	AppraisalStatusCompleted = "COMPLETED"
	AppraisalStatusRejected  = "REJECTED"
)

// Appraisal is one performance-appraisal record for an employee in a cycle.
type Appraisal struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	SupervisorID string    `json:"supervisorId"`
	TemplateID   string    `json:"templateId"`
	Cycle        string    `json:"cycle"`
	Status       string    `json:"status"`
	TotalScore   float64   `json:"totalScore"`
	Grade        string    `json:"grade"`
	DueDate      time.Time `json:"dueDate"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AppraisalSection is one weighted section of an appraisal template. Weights
// across a template sum to 1.0.
type AppraisalSection struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Rating float64 `json:"rating"` // 0-100
}
