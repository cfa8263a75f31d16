package salary

import "context"

type SalaryStructureRepository interface {
	Create(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (SalaryStructure, error)
	Update(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
