package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	// NextEmployeeCode draws the next EMP### code from a database sequence.
	NextEmployeeCode(ctx context.Context) (string, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListAll returns every employee regardless of status, oldest first.
	ListAll(ctx context.Context) ([]Employee, error)
}
