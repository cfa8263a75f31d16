package employee

import (
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	DateOfJoining string `json:"date_of_joining"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "is required")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if validator.IsEmpty(r.Department) {
		errs.Add("department", "is required")
	}
	if validator.IsEmpty(r.Designation) {
		errs.Add("designation", "is required")
	}
	if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs.Add("date_of_joining", "must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	FullName      *string `json:"full_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	DateOfJoining *string `json:"date_of_joining,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		errs.Add("id", "is required")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "cannot be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs.Add("department", "cannot be empty")
	}
	if r.Designation != nil && validator.IsEmpty(*r.Designation) {
		errs.Add("designation", "cannot be empty")
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs.Add("date_of_joining", "must be in YYYY-MM-DD format")
		}
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "must be Active or Inactive")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Status     *string `json:"status,omitempty"`
	Department *string `json:"department,omitempty"`
	Search     *string `json:"search,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *EmployeeFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		f.Search = &s
	}
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_code"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	DateOfJoining string `json:"date_of_joining"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
