package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequestRequest struct {
	EmployeeID    string  `json:"employee_id"`
	LeaveType     string  `json:"leave_type"`
	FromDate      string  `json:"from_date"`
	ToDate        string  `json:"to_date"`
	IsHalfDay     bool    `json:"is_half_day"`
	HalfDayPeriod *string `json:"half_day_period,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

// Validate checks the request shape and returns the parsed range.
func (r *CreateLeaveRequestRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if !LeaveType(r.LeaveType).IsValid() {
		errs.Add("leave_type", "must be one of Casual, Sick, Earned, Maternity, Paternity, Emergency, LOP")
	}
	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs.Add("from_date", "must be in YYYY-MM-DD format")
	}
	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs.Add("to_date", "must be in YYYY-MM-DD format")
	}
	if r.IsHalfDay {
		if r.HalfDayPeriod == nil {
			errs.Add("half_day_period", "is required for half-day leave")
		} else if p := HalfDayPeriod(*r.HalfDayPeriod); p != HalfDayFirstHalf && p != HalfDaySecondHalf {
			errs.Add("half_day_period", "must be FirstHalf or SecondHalf")
		}
	}
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if r.IsHalfDay && !from.Equal(to) {
		return time.Time{}, time.Time{}, ErrHalfDaySpansMultiDays
	}
	if LeaveType(r.LeaveType) == LeaveTypeEmergency && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		return time.Time{}, time.Time{}, ErrReasonRequired
	}
	return from, to, nil
}

type RejectLeaveRequestRequest struct {
	RequestID  string  `json:"-"`
	ApproverID string  `json:"-"`
	Reason     *string `json:"reason,omitempty"`
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	LeaveType  *string
	Page       int
	Limit      int
}

func (f *LeaveRequestFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}

type LeaveRequestResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	LeaveType       string          `json:"leave_type"`
	FromDate        string          `json:"from_date"`
	ToDate          string          `json:"to_date"`
	NumberOfDays    decimal.Decimal `json:"number_of_days"`
	IsHalfDay       bool            `json:"is_half_day"`
	HalfDayPeriod   *string         `json:"half_day_period,omitempty"`
	Reason          *string         `json:"reason,omitempty"`
	Status          string          `json:"status"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ListLeaveRequestResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

type LeaveBalanceResponse struct {
	LeaveType     string          `json:"leave_type"`
	Year          int             `json:"year"`
	AllocatedDays decimal.Decimal `json:"allocated_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

type CreateDefaultBalancesRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *CreateDefaultBalancesRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if r.Year < 1900 || r.Year > 9999 {
		errs.Add("year", "must be a four digit year")
	}
	return errs.Err()
}

type ProcessYearEndRequest struct {
	Year int `json:"year"`
}

func (r *ProcessYearEndRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Year < 1900 || r.Year > 9998 {
		errs.Add("year", "must be a four digit year")
	}
	return errs.Err()
}

// YearEndSummary reports what a rollover from Year into TargetYear did.
type YearEndSummary struct {
	Year               int `json:"year"`
	TargetYear         int `json:"target_year"`
	EmployeesProcessed int `json:"employees_processed"`
	BalancesCreated    int `json:"balances_created"`
	BalancesSkipped    int `json:"balances_skipped"`
}
