package salary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type SalaryServiceImpl struct {
	tx           database.Transactor
	salaryRepo   salary.SalaryStructureRepository
	employeeRepo employee.EmployeeRepository
	audit        audit.AuditService
}

func NewSalaryService(tx database.Transactor, salaryRepo salary.SalaryStructureRepository, employeeRepo employee.EmployeeRepository, auditService audit.AuditService) salary.SalaryService {
	return &SalaryServiceImpl{
		tx:           tx,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		audit:        auditService,
	}
}

func (s *SalaryServiceImpl) CreateSalaryStructure(ctx context.Context, req salary.CreateSalaryStructureRequest) (salary.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryStructureResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	structure := salary.SalaryStructure{
		EmployeeID:  req.EmployeeID,
		BasicSalary: req.BasicSalary,
		HRA:         req.HRA,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		PF:          req.PF,
		Tax:         req.Tax,
	}
	structure.NetSalary = structure.ComputeNetSalary()

	var created salary.SalaryStructure
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.salaryRepo.Create(ctx, structure)
		if err != nil {
			return err
		}
		return s.audit.Log(ctx, "", audit.ActionCreate, "salary_structure", created.ID, nil, mapToResponse(created))
	})
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	slog.Info("Salary structure created", "employee_id", created.EmployeeID, "net_salary", created.NetSalary.String())
	return mapToResponse(created), nil
}

func (s *SalaryServiceImpl) UpdateSalaryStructure(ctx context.Context, req salary.UpdateSalaryStructureRequest) (salary.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	var updated salary.SalaryStructure
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.salaryRepo.GetByEmployeeID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		updated, err = s.salaryRepo.Update(ctx, req.Apply(current))
		if err != nil {
			return fmt.Errorf("failed to update salary structure: %w", err)
		}
		return s.audit.Log(ctx, "", audit.ActionUpdate, "salary_structure", updated.ID, mapToResponse(current), mapToResponse(updated))
	})
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}

	slog.Info("Salary structure updated", "employee_id", updated.EmployeeID, "net_salary", updated.NetSalary.String())
	return mapToResponse(updated), nil
}

func (s *SalaryServiceImpl) GetSalaryStructureByEmployee(ctx context.Context, employeeID string) (salary.SalaryStructureResponse, error) {
	structure, err := s.salaryRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return salary.SalaryStructureResponse{}, err
	}
	return mapToResponse(structure), nil
}

func (s *SalaryServiceImpl) DeleteSalaryStructure(ctx context.Context, employeeID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.salaryRepo.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := s.salaryRepo.DeleteByEmployeeID(ctx, employeeID); err != nil {
			return err
		}
		return s.audit.Log(ctx, "", audit.ActionDelete, "salary_structure", current.ID, mapToResponse(current), nil)
	})
}

func mapToResponse(s salary.SalaryStructure) salary.SalaryStructureResponse {
	return salary.SalaryStructureResponse{
		ID:          s.ID,
		EmployeeID:  s.EmployeeID,
		BasicSalary: s.BasicSalary,
		HRA:         s.HRA,
		Allowances:  s.Allowances,
		Deductions:  s.Deductions,
		PF:          s.PF,
		Tax:         s.Tax,
		NetSalary:   s.NetSalary,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}
