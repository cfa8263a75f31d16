package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates an employee and allocates the current year's default leave balances
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// DeactivateEmployee flips status to Inactive; history is kept
	DeactivateEmployee(ctx context.Context, id string) (EmployeeResponse, error)
}
