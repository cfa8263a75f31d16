package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusProcessed PaymentStatus = "Processed"
	PaymentStatusPaid      PaymentStatus = "Paid"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusProcessed || s == PaymentStatusPaid
}

// Payroll is the computed pay of one employee for one month.
type Payroll struct {
	ID           string
	EmployeeID   string
	PayrollMonth time.Time // first day of the month
	PeriodStart  time.Time
	PeriodEnd    time.Time

	BasicSalary          decimal.Decimal
	BasicDeduction       decimal.Decimal
	AdjustedBasicSalary  decimal.Decimal
	HRA                  decimal.Decimal
	Allowances           decimal.Decimal
	GrossSalary          decimal.Decimal
	StandingDeductions   decimal.Decimal
	AdditionalDeductions decimal.Decimal
	TotalDeductions      decimal.Decimal
	Bonus                decimal.Decimal
	NetPay               decimal.Decimal

	WorkingDays   int
	PresentDays   int
	PaidLeaveDays int
	AbsentDays    int

	PaymentDate   time.Time
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
}

// Recompute re-derives TotalDeductions and NetPay after Bonus or
// AdditionalDeductions change.
func (p *Payroll) Recompute() {
	p.TotalDeductions = p.StandingDeductions.Add(p.AdditionalDeductions)
	p.NetPay = p.GrossSalary.Add(p.Bonus).Sub(p.TotalDeductions)
}
