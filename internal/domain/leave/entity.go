package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveType string

const (
	LeaveTypeCasual    LeaveType = "Casual"
	LeaveTypeSick      LeaveType = "Sick"
	LeaveTypeEarned    LeaveType = "Earned"
	LeaveTypeMaternity LeaveType = "Maternity"
	LeaveTypePaternity LeaveType = "Paternity"
	LeaveTypeEmergency LeaveType = "Emergency"
	LeaveTypeLOP       LeaveType = "LOP"
)

// TrackedLeaveTypes are the types with a per-year balance row.
var TrackedLeaveTypes = []LeaveType{LeaveTypeCasual, LeaveTypeSick, LeaveTypeEarned}

func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveTypeCasual, LeaveTypeSick, LeaveTypeEarned,
		LeaveTypeMaternity, LeaveTypePaternity, LeaveTypeEmergency, LeaveTypeLOP:
		return true
	}
	return false
}

// IsBalanceTracked reports whether requests of this type draw on a balance.
// Every other type is always permitted.
func (t LeaveType) IsBalanceTracked() bool {
	return t == LeaveTypeCasual || t == LeaveTypeSick || t == LeaveTypeEarned
}

// IsPaid reports whether an approved day of this type is exempt from payroll deduction.
func (t LeaveType) IsPaid() bool {
	switch t {
	case LeaveTypeCasual, LeaveTypeSick, LeaveTypeEarned, LeaveTypeMaternity, LeaveTypePaternity:
		return true
	}
	return false
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "Pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "Approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "Rejected"
)

type HalfDayPeriod string

const (
	HalfDayFirstHalf  HalfDayPeriod = "FirstHalf"
	HalfDaySecondHalf HalfDayPeriod = "SecondHalf"
)

type LeaveRequest struct {
	ID              string
	EmployeeID      string
	LeaveType       LeaveType
	FromDate        time.Time
	ToDate          time.Time
	NumberOfDays    decimal.Decimal
	IsHalfDay       bool
	HalfDayPeriod   *HalfDayPeriod
	Reason          *string
	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Covers reports whether date falls within [FromDate, ToDate].
func (r LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.FromDate) && !date.After(r.ToDate)
}

// Overlaps reports whether the inclusive ranges of r and o intersect.
func (r LeaveRequest) Overlaps(o LeaveRequest) bool {
	return !r.FromDate.After(o.ToDate) && !o.FromDate.After(r.ToDate)
}

// LeaveBalance is one ledger row keyed by (employee, leave type, year).
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveType     LeaveType
	Year          int
	AllocatedDays decimal.Decimal
	UsedDays      decimal.Decimal
	RemainingDays decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLeaveBalance returns an unused balance with remaining == allocated.
func NewLeaveBalance(employeeID string, leaveType LeaveType, year int, allocated decimal.Decimal) LeaveBalance {
	return LeaveBalance{
		EmployeeID:    employeeID,
		LeaveType:     leaveType,
		Year:          year,
		AllocatedDays: allocated,
		UsedDays:      decimal.Zero,
		RemainingDays: allocated,
	}
}

// RequestedDays returns 0.5 for a half day, otherwise the inclusive calendar day count.
func RequestedDays(from, to time.Time, halfDay bool) decimal.Decimal {
	if halfDay {
		return decimal.NewFromFloat(0.5)
	}
	days := int64(to.Sub(from).Hours()/24) + 1
	return decimal.NewFromInt(days)
}
