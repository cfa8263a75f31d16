package auth

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "is required")
	}
	return errs.Err()
}

type CreateUserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if len(r.Password) < 8 {
		errs.Add("password", "must be at least 8 characters long")
	}
	role := user.Role(r.Role)
	if !role.IsValid() {
		errs.Add("role", "must be admin, hr or employee")
	}
	if role == user.RoleEmployee && (r.EmployeeID == nil || *r.EmployeeID == "") {
		errs.Add("employee_id", "is required for employee accounts")
	}
	return errs.Err()
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}
