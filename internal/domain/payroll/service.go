package payroll

import "context"

type PayrollService interface {
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)
	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	GetPayrollsByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	GetPayrollsByMonth(ctx context.Context, month string) ([]PayrollResponse, error)
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollResponse, error)
	DeletePayroll(ctx context.Context, id string, actorID string) error
}
