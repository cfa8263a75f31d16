package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveBalanceNotFound  = errors.New("leave balance not found")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrOverlappingLeave      = errors.New("leave overlaps an approved leave request")
	ErrInvalidTransition     = errors.New("leave request already processed")
	ErrInvalidDateRange      = errors.New("from date must not be after to date")
	ErrReasonRequired        = errors.New("reason is required for emergency leave")
	ErrBalancesNotCreated    = errors.New("no leave balances exist for the requested year")
	ErrYearBeforeJoining     = errors.New("employee had not joined in the requested year")
	ErrInvalidLeavePolicy    = errors.New("invalid leave policy")
	ErrHalfDaySpansMultiDays = errors.New("half-day leave must start and end on the same date")
)
