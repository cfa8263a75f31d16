package employee

import "time"

type Employee struct {
	ID            string
	EmployeeCode  string
	FullName      string
	Email         string
	Department    string
	Designation   string
	DateOfJoining time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}
