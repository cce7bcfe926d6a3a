// internal/workers/appraisal/calculate-appraisal-score/models.go
package calculateappraisalscore

import "appraisal-workers/internal/models"

type Input struct {
	AppraisalID string                    `json:"appraisalId"`
	Sections    []models.AppraisalSection `json:"sections"`
}

type SectionScore struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Rating   float64 `json:"rating"`
	Weighted float64 `json:"weighted"`
}

type Output struct {
	AppraisalID   string         `json:"appraisalId"`
	TotalScore    float64        `json:"totalScore"`
	Grade         string         `json:"grade"`
	SectionScores []SectionScore `json:"sectionScores"`
}

// Grade bands over the weighted total, highest first.
const (
	GradeOutstanding      = "OUTSTANDING"
	GradeExceeds          = "EXCEEDS_EXPECTATIONS"
	GradeMeets            = "MEETS_EXPECTATIONS"
	GradeNeedsImprovement = "NEEDS_IMPROVEMENT"
	GradeUnsatisfactory   = "UNSATISFACTORY"
)
