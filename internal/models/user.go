package models

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStaff   UserRole = "staff"
)

// User is the authenticated principal. Accounts are owned by the identity
// provider; the service only keeps the reference it attaches to grades and
// generated reports.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role"`
}

func (u *User) CanEditGrades() bool {
	return u.Role == RoleAdmin || u.Role == RoleTeacher
}
