package models

import "time"

// RoleVisibilityAll marks a FAQ as visible to every role.
const RoleVisibilityAll = "ALL"

// FaqRecord is a knowledge-base entry. Only active records participate in
// retrieval; role_visibility is either RoleVisibilityAll or a specific role.
type FaqRecord struct {
	ID             string    `json:"id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	RoleVisibility string    `json:"roleVisibility"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

// VisibleTo reports whether the record may be shown to the given role.
func (f FaqRecord) VisibleTo(role string) bool {
	return f.RoleVisibility == RoleVisibilityAll || f.RoleVisibility == role
}
