package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const leaveBalanceColumns = `id, employee_id, leave_type, year, allocated_days, used_days, remaining_days, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveType, &b.Year,
		&b.AllocatedDays, &b.UsedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *leaveBalanceRepository) InsertIfAbsent(ctx context.Context, b leave.LeaveBalance) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, year, allocated_days, used_days, remaining_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, leave_type, year) DO NOTHING
	`
	tag, err := q.Exec(ctx, query,
		newID(), b.EmployeeID, b.LeaveType, b.Year, b.AllocatedDays, b.UsedDays, b.RemainingDays,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, employee.ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to insert leave balance: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1 AND leave_type = $2 AND year = $3`
	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// AddUsage is a single UPDATE so concurrent approvals cannot lose writes.
func (r *leaveBalanceRepository) AddUsage(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int, days decimal.Decimal) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $4,
			remaining_days = allocated_days - (used_days + $4),
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveType, year, days))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to update leave balance: %w", err)
	}
	return b, nil
}

func (r *leaveBalanceRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY CASE leave_type WHEN 'Casual' THEN 1 WHEN 'Sick' THEN 2 ELSE 3 END
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
