package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Create returns ErrPayrollAlreadyExists on the (employee, month) unique constraint.
	Create(ctx context.Context, record Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	ExistsForMonth(ctx context.Context, employeeID string, month time.Time) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Update(ctx context.Context, record Payroll) error
	Delete(ctx context.Context, id string) error
}
