package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_code, full_name, email, department, designation, date_of_joining, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FullName, &e.Email, &e.Department, &e.Designation,
		&e.DateOfJoining, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func mapEmployeeWriteError(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	_, constraint := pgErrorCode(err)
	switch constraint {
	case "uk_employees_email":
		return employee.ErrEmailExists
	case "uk_employees_code":
		return employee.ErrEmployeeCodeExists
	}
	return err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`
	e, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return e, nil
}

// NextEmployeeCode formats nextval as EMP001, EMP002, ... growing past three digits.
func (r *employeeRepository) NextEmployeeCode(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT nextval('employee_code_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to draw employee code: %w", err)
	}
	return fmt.Sprintf("EMP%03d", n), nil
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_code, full_name, email, department, designation, date_of_joining, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	e, err := scanEmployee(q.QueryRow(ctx, query,
		newID(), newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email,
		newEmployee.Department, newEmployee.Designation, newEmployee.DateOfJoining, newEmployee.Status,
	))
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	add := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}
	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.Email != nil {
		add("email", strings.ToLower(*req.Email))
	}
	if req.Department != nil {
		add("department", *req.Department)
	}
	if req.Designation != nil {
		add("designation", *req.Designation)
	}
	if req.DateOfJoining != nil {
		doj, _ := validator.IsValidDate(*req.DateOfJoining)
		add("date_of_joining", doj)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $1`, strings.Join(setParts, ", "))
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM employees WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Department != nil {
		baseQuery += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (full_name ILIKE $%d OR employee_code ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.Limit
	selectQuery := fmt.Sprintf(`SELECT %s%s ORDER BY employee_code ASC LIMIT $%d OFFSET $%d`,
		employeeColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, totalCount, nil
}

func (r *employeeRepository) ListAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY date_of_joining ASC, employee_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
