package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// DayClass is how a weekday in the working period is treated for pay.
type DayClass string

const (
	DayPresent   DayClass = "Present"
	DayPaidLeave DayClass = "PaidLeave"
	DayAbsent    DayClass = "Absent"
)

// Period is an inclusive date range within one month.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive calendar day count, weekends included.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WorkingPeriod returns [max(joined, first of month), last of month]. It
// fails with ErrInvalidPeriod when the employee joins after the month ends.
func WorkingPeriod(dateOfJoining time.Time, month time.Time) (Period, error) {
	first := MonthStart(month)
	last := first.AddDate(0, 1, -1)

	start := first
	if joined := dateOnly(dateOfJoining); joined.After(first) {
		start = joined
	}
	if start.After(last) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: last}, nil
}

type CalculationInput struct {
	Period               Period
	Structure            salary.SalaryStructure
	Attendance           []attendance.Attendance
	Leaves               []leave.LeaveRequest
	Bonus                decimal.Decimal
	AdditionalDeductions decimal.Decimal
}

type CalculationResult struct {
	DailyBasic          decimal.Decimal
	BasicDeduction      decimal.Decimal
	AdjustedBasicSalary decimal.Decimal
	GrossSalary         decimal.Decimal
	StandingDeductions  decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetPay              decimal.Decimal

	WorkingDays   int
	PresentDays   int
	PaidLeaveDays int
	AbsentDays    int

	Days map[time.Time]DayClass
}

// ClassifyDay applies Present > paid approved leave > Absent for one weekday.
func ClassifyDay(date time.Time, present map[time.Time]bool, leaves []leave.LeaveRequest) DayClass {
	if present[date] {
		return DayPresent
	}
	for _, l := range leaves {
		if l.Status == leave.LeaveRequestStatusApproved && l.LeaveType.IsPaid() && l.Covers(date) {
			return DayPaidLeave
		}
	}
	return DayAbsent
}

// Calculate prorates basic salary over the period. The daily rate divides by
// calendar days, while only weekdays can be deducted.
func Calculate(in CalculationInput) CalculationResult {
	s := in.Structure
	res := CalculationResult{
		Days: make(map[time.Time]DayClass),
	}
	res.DailyBasic = s.BasicSalary.Div(decimal.NewFromInt(int64(in.Period.Days())))

	present := make(map[time.Time]bool, len(in.Attendance))
	for _, a := range in.Attendance {
		if a.Status == attendance.StatusPresent {
			present[dateOnly(a.Date)] = true
		}
	}

	deduction := decimal.Zero
	for d := in.Period.Start; !d.After(in.Period.End); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		res.WorkingDays++

		class := ClassifyDay(d, present, in.Leaves)
		res.Days[d] = class
		switch class {
		case DayPresent:
			res.PresentDays++
		case DayPaidLeave:
			res.PaidLeaveDays++
		case DayAbsent:
			res.AbsentDays++
			deduction = deduction.Add(res.DailyBasic)
		}
	}

	res.BasicDeduction = deduction.Round(2)
	res.AdjustedBasicSalary = s.BasicSalary.Sub(res.BasicDeduction)
	res.GrossSalary = res.AdjustedBasicSalary.Add(s.HRA).Add(s.Allowances).Round(2)
	res.StandingDeductions = s.StandingDeductions()
	res.TotalDeductions = res.StandingDeductions.Add(in.AdditionalDeductions).Round(2)
	res.NetPay = res.GrossSalary.Add(in.Bonus).Sub(res.TotalDeductions).Round(2)
	return res
}
