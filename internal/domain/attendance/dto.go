package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	// Timestamp is optional RFC3339; the server clock is used when empty.
	Timestamp string `json:"timestamp,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return validateClockEvent(r.EmployeeID, r.Timestamp)
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
	Timestamp  string `json:"timestamp,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return validateClockEvent(r.EmployeeID, r.Timestamp)
}

func validateClockEvent(employeeID, timestamp string) error {
	var errs validator.ValidationErrors
	if employeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if timestamp != "" {
		if _, ok := validator.IsValidDateTime(timestamp); !ok {
			errs.Add("timestamp", "must be an RFC3339 timestamp")
		}
	}
	return errs.Err()
}

// MarkAttendanceRequest lets HR record a status for a day without a check-in.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", "must be one of Present, Absent, Leave, Holiday")
	}
	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID string
	From       string
	To         string
}

// Range parses From and To. Missing values default to the current month.
func (f *AttendanceFilter) Range(now time.Time) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors
	if f.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from, to := firstOfMonth, firstOfMonth.AddDate(0, 1, -1)
	if f.From != "" {
		d, ok := validator.IsValidDate(f.From)
		if !ok {
			errs.Add("from", "must be in YYYY-MM-DD format")
		}
		from = d
	}
	if f.To != "" {
		d, ok := validator.IsValidDate(f.To)
		if !ok {
			errs.Add("to", "must be in YYYY-MM-DD format")
		}
		to = d
	}
	if err := errs.Err(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to, nil
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"`
	LoginTime    *time.Time      `json:"login_time,omitempty"`
	LogoutTime   *time.Time      `json:"logout_time,omitempty"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	Status       string          `json:"status"`
}
