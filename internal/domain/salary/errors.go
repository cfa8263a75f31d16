package salary

import "errors"

var (
	ErrSalaryStructureNotFound = errors.New("salary structure not found")
	ErrSalaryStructureExists   = errors.New("salary structure already exists for this employee")
	ErrNegativeAmount          = errors.New("salary amounts must be non-negative")
)
