package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveBalanceRepository interface {
	// InsertIfAbsent creates b unless a row for its (employee, type, year)
	// already exists. It reports whether a row was inserted.
	InsertIfAbsent(ctx context.Context, b LeaveBalance) (bool, error)

	// Get returns ErrLeaveBalanceNotFound when no row exists.
	Get(ctx context.Context, employeeID string, leaveType LeaveType, year int) (LeaveBalance, error)

	// AddUsage adds days to used_days and re-derives remaining_days in one statement.
	AddUsage(ctx context.Context, employeeID string, leaveType LeaveType, year int, days decimal.Decimal) (LeaveBalance, error)

	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateStatus persists Status, ApprovedBy, ApprovedAt and RejectionReason.
	UpdateStatus(ctx context.Context, req LeaveRequest) error

	// ListApprovedInRange returns the employee's approved requests intersecting [from, to].
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
}
