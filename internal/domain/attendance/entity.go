package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	LoginTime    *time.Time
	LogoutTime   *time.Time
	WorkingHours decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

// WorkingHoursBetween returns the elapsed hours between login and logout,
// rounded to two decimal places.
func WorkingHoursBetween(login, logout time.Time) decimal.Decimal {
	minutes := decimal.NewFromFloat(logout.Sub(login).Minutes()).Truncate(0)
	return minutes.Div(decimal.NewFromInt(60)).Round(2)
}
