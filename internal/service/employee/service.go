package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	balances     leave.BalanceService
	now          func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	balanceService leave.BalanceService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		balances:     balanceService,
		now:          time.Now,
	}
}

// CreateEmployee inserts the employee and opens this year's default leave
// balances in one transaction.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	joined, _ := time.Parse("2006-01-02", req.DateOfJoining)

	var created employee.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		code, err := s.employeeRepo.NextEmployeeCode(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate employee code: %w", err)
		}

		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			EmployeeCode:  code,
			FullName:      strings.TrimSpace(req.FullName),
			Email:         strings.ToLower(strings.TrimSpace(req.Email)),
			Department:    strings.TrimSpace(req.Department),
			Designation:   strings.TrimSpace(req.Designation),
			DateOfJoining: joined,
			Status:        employee.StatusActive,
		})
		if err != nil {
			return err
		}

		if _, err := s.balances.CreateDefaultBalances(ctx, created.ID, s.now().Year()); err != nil {
			return fmt.Errorf("failed to create default leave balances: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToResponse(emp), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToResponse(updated), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, mapToResponse(e))
	}
	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if emp.Status == employee.StatusInactive {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	inactive := string(employee.StatusInactive)
	if err := s.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{ID: id, Status: &inactive}); err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp.Status = employee.StatusInactive

	slog.Info("Employee deactivated", "employee_id", id)
	return mapToResponse(emp), nil
}

func mapToResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            e.ID,
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Email:         e.Email,
		Department:    e.Department,
		Designation:   e.Designation,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}
