package payroll

import "errors"

var (
	ErrPayrollNotFound        = errors.New("payroll not found")
	ErrPayrollAlreadyExists   = errors.New("payroll already exists for this employee and month")
	ErrPayrollAlreadyPaid     = errors.New("payroll already paid, cannot modify")
	ErrSalaryStructureMissing = errors.New("employee has no salary structure")
	ErrInvalidPeriod          = errors.New("employee has no working days in the requested month")
)
