package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStructure is the standing monthly pay definition of one employee.
type SalaryStructure struct {
	ID          string
	EmployeeID  string
	BasicSalary decimal.Decimal
	HRA         decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	PF          decimal.Decimal
	Tax         decimal.Decimal
	NetSalary   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeNetSalary returns basic + hra + allowances - (deductions + pf + tax).
func (s SalaryStructure) ComputeNetSalary() decimal.Decimal {
	earnings := s.BasicSalary.Add(s.HRA).Add(s.Allowances)
	return earnings.Sub(s.StandingDeductions())
}

// StandingDeductions is deductions + pf + tax.
func (s SalaryStructure) StandingDeductions() decimal.Decimal {
	return s.Deductions.Add(s.PF).Add(s.Tax)
}
