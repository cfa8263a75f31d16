package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrHRAccessRequired    = errors.New("hr or admin access required")
	ErrEmployeeLinkMissing = errors.New("account is not linked to an employee")
)
