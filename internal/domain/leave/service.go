package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceService maintains the per-employee, per-type, per-year leave ledger.
type BalanceService interface {
	CreateDefaultBalances(ctx context.Context, employeeID string, year int) (int, error)
	HasSufficientBalance(ctx context.Context, employeeID string, leaveType LeaveType, requestedDays decimal.Decimal, year int) (bool, error)
	UpdateBalance(ctx context.Context, employeeID string, leaveType LeaveType, usedDays decimal.Decimal, year int) error
	ProcessYearEnd(ctx context.Context, year int) (YearEndSummary, error)
	GetEmployeeLeaveBalances(ctx context.Context, employeeID string, year *int) ([]LeaveBalanceResponse, error)
}

type RequestService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req RejectLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
}
