package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // full access
	RoleHR       Role = "hr"       // payroll, leave approval, employee records
	RoleEmployee Role = "employee" // self service only
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleEmployee
}

// IsHR reports whether the role may manage payroll and approve leave.
func (r Role) IsHR() bool {
	return r == RoleAdmin || r == RoleHR
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
