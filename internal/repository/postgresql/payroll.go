package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.id, p.employee_id, p.payroll_month, p.period_start, p.period_end,
	p.basic_salary, p.basic_deduction, p.adjusted_basic_salary, p.hra, p.allowances, p.gross_salary,
	p.standing_deductions, p.additional_deductions, p.total_deductions, p.bonus, p.net_pay,
	p.working_days, p.present_days, p.paid_leave_days, p.absent_days,
	p.payment_date, p.payment_status, p.created_at, p.updated_at,
	e.employee_code, e.full_name`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PayrollMonth, &p.PeriodStart, &p.PeriodEnd,
		&p.BasicSalary, &p.BasicDeduction, &p.AdjustedBasicSalary, &p.HRA, &p.Allowances, &p.GrossSalary,
		&p.StandingDeductions, &p.AdditionalDeductions, &p.TotalDeductions, &p.Bonus, &p.NetPay,
		&p.WorkingDays, &p.PresentDays, &p.PaidLeaveDays, &p.AbsentDays,
		&p.PaymentDate, &p.PaymentStatus, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeCode, &p.EmployeeName,
	)
	return p, err
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			INSERT INTO payrolls (
				id, employee_id, payroll_month, period_start, period_end,
				basic_salary, basic_deduction, adjusted_basic_salary, hra, allowances, gross_salary,
				standing_deductions, additional_deductions, total_deductions, bonus, net_pay,
				working_days, present_days, paid_leave_days, absent_days,
				payment_date, payment_status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			RETURNING *
		)
		SELECT ` + payrollColumns + `
		FROM p JOIN employees e ON e.id = p.employee_id
	`

	created, err := scanPayroll(q.QueryRow(ctx, query,
		newID(), record.EmployeeID, record.PayrollMonth, record.PeriodStart, record.PeriodEnd,
		record.BasicSalary, record.BasicDeduction, record.AdjustedBasicSalary, record.HRA, record.Allowances, record.GrossSalary,
		record.StandingDeductions, record.AdditionalDeductions, record.TotalDeductions, record.Bonus, record.NetPay,
		record.WorkingDays, record.PresentDays, record.PaidLeaveDays, record.AbsentDays,
		record.PaymentDate, record.PaymentStatus,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		case isForeignKeyViolation(err):
			return payroll.Payroll{}, employee.ErrEmployeeNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payrolls p JOIN employees e ON e.id = p.employee_id WHERE p.id = $1`
	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) ExistsForMonth(ctx context.Context, employeeID string, month time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payrolls WHERE employee_id = $1 AND payroll_month = $2)`,
		employeeID, payroll.MonthStart(month),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll existence: %w", err)
	}
	return exists, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND p.payroll_month = $%d", argIdx)
		args = append(args, payroll.MonthStart(*filter.Month))
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND p.payment_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	sortColumn := "p.payroll_month"
	allowedColumns := map[string]string{
		"created_at":    "p.created_at",
		"payroll_month": "p.payroll_month",
		"employee_code": "e.employee_code",
		"employee_name": "e.full_name",
		"net_pay":       "p.net_pay",
	}
	if col, ok := allowedColumns[filter.SortBy]; ok {
		sortColumn = col
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY %s %s, p.id
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return records, totalCount, nil
}

// Update persists the editable fields and the totals derived from them.
func (r *payrollRepository) Update(ctx context.Context, record payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET bonus = $2, additional_deductions = $3, total_deductions = $4, net_pay = $5,
			payment_date = $6, payment_status = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		record.ID, record.Bonus, record.AdditionalDeductions, record.TotalDeductions, record.NetPay,
		record.PaymentDate, record.PaymentStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}
