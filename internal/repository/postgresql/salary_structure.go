package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryStructureRepository struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) salary.SalaryStructureRepository {
	return &salaryStructureRepository{db: db}
}

const salaryStructureColumns = `id, employee_id, basic_salary, hra, allowances, deductions, pf, tax, net_salary, created_at, updated_at`

func scanSalaryStructure(row pgx.Row) (salary.SalaryStructure, error) {
	var s salary.SalaryStructure
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.BasicSalary, &s.HRA, &s.Allowances,
		&s.Deductions, &s.PF, &s.Tax, &s.NetSalary, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *salaryStructureRepository) Create(ctx context.Context, structure salary.SalaryStructure) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (id, employee_id, basic_salary, hra, allowances, deductions, pf, tax, net_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + salaryStructureColumns

	s, err := scanSalaryStructure(q.QueryRow(ctx, query,
		newID(), structure.EmployeeID, structure.BasicSalary, structure.HRA, structure.Allowances,
		structure.Deductions, structure.PF, structure.Tax, structure.NetSalary,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return salary.SalaryStructure{}, salary.ErrSalaryStructureExists
		case isForeignKeyViolation(err):
			return salary.SalaryStructure{}, employee.ErrEmployeeNotFound
		case isCheckViolation(err):
			return salary.SalaryStructure{}, salary.ErrNegativeAmount
		}
		return salary.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}
	return s, nil
}

func (r *salaryStructureRepository) GetByEmployeeID(ctx context.Context, employeeID string) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryStructureColumns + ` FROM salary_structures WHERE employee_id = $1`
	s, err := scanSalaryStructure(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
		}
		return salary.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}
	return s, nil
}

func (r *salaryStructureRepository) Update(ctx context.Context, structure salary.SalaryStructure) (salary.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_structures
		SET basic_salary = $2, hra = $3, allowances = $4, deductions = $5, pf = $6, tax = $7,
			net_salary = $8, updated_at = NOW()
		WHERE employee_id = $1
		RETURNING ` + salaryStructureColumns

	s, err := scanSalaryStructure(q.QueryRow(ctx, query,
		structure.EmployeeID, structure.BasicSalary, structure.HRA, structure.Allowances,
		structure.Deductions, structure.PF, structure.Tax, structure.NetSalary,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
		}
		if isCheckViolation(err) {
			return salary.SalaryStructure{}, salary.ErrNegativeAmount
		}
		return salary.SalaryStructure{}, fmt.Errorf("failed to update salary structure: %w", err)
	}
	return s, nil
}

func (r *salaryStructureRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_structures WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete salary structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryStructureNotFound
	}
	return nil
}
