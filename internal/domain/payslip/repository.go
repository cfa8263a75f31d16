package payslip

import "context"

type PayslipRepository interface {
	// Upsert keeps one row per payroll; regenerating replaces file path and date.
	Upsert(ctx context.Context, slip Payslip) (Payslip, error)
	GetByPayrollID(ctx context.Context, payrollID string) (Payslip, error)
}
