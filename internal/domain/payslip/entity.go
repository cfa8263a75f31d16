package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payslip struct {
	ID            string
	PayrollID     string
	FilePath      string
	GeneratedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Document is everything a renderer needs; amounts are already final.
type Document struct {
	PayrollID    string
	EmployeeCode string
	EmployeeName string
	Department   string
	Designation  string
	PayrollMonth time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	PaymentDate  time.Time

	WorkingDays   int
	PresentDays   int
	PaidLeaveDays int
	AbsentDays    int

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
}
