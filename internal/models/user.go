package models

// Platform roles. Role strings travel through process variables unchanged,
// so the constants here are the wire values.
const (
	RoleEmployee   = "EMPLOYEE"
	RoleSupervisor = "SUPERVISOR"
	RoleHRAdmin    = "HR_ADMIN"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Active   bool   `json:"active"`
}
