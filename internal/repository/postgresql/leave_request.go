package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, employee_id, leave_type, from_date, to_date, number_of_days, is_half_day, half_day_period,
	reason, status, approved_by, approved_at, rejection_reason, created_at, updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.FromDate, &lr.ToDate, &lr.NumberOfDays,
		&lr.IsHalfDay, &lr.HalfDayPeriod, &lr.Reason, &lr.Status,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectionReason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	return lr, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, from_date, to_date, number_of_days,
			is_half_day, half_day_period, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		newID(), req.EmployeeID, req.LeaveType, req.FromDate, req.ToDate, req.NumberOfDays,
		req.IsHalfDay, req.HalfDayPeriod, req.Reason, req.Status,
	))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return leave.LeaveRequest{}, employee.ErrEmployeeNotFound
		case isExclusionViolation(err):
			return leave.LeaveRequest{}, leave.ErrOverlappingLeave
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, false)
}

func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *leaveRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, req.ID, req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectionReason)
	if err != nil {
		if isExclusionViolation(err) {
			return leave.ErrOverlappingLeave
		}
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND status = 'Approved' AND from_date <= $3 AND to_date >= $2
		ORDER BY from_date ASC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM leave_requests WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveType != nil {
		baseQuery += fmt.Sprintf(" AND leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.Limit
	selectQuery := fmt.Sprintf(`SELECT %s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leaveRequestColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, totalCount, nil
}
