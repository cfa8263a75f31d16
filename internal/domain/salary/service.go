package salary

import "context"

type SalaryService interface {
	CreateSalaryStructure(ctx context.Context, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	UpdateSalaryStructure(ctx context.Context, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetSalaryStructureByEmployee(ctx context.Context, employeeID string) (SalaryStructureResponse, error)
	DeleteSalaryStructure(ctx context.Context, employeeID string) error
}
