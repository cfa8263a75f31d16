package salary

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSalaryStructureRequest struct {
	EmployeeID  string          `json:"-"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	PF          decimal.Decimal `json:"pf"`
	Tax         decimal.Decimal `json:"tax"`
}

func (r *CreateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if !r.BasicSalary.IsPositive() {
		errs.Add("basic_salary", "must be greater than zero")
	}
	checkNonNegative(&errs, map[string]decimal.Decimal{
		"hra":        r.HRA,
		"allowances": r.Allowances,
		"deductions": r.Deductions,
		"pf":         r.PF,
		"tax":        r.Tax,
	})

	return errs.Err()
}

type UpdateSalaryStructureRequest struct {
	EmployeeID  string           `json:"-"`
	BasicSalary *decimal.Decimal `json:"basic_salary,omitempty"`
	HRA         *decimal.Decimal `json:"hra,omitempty"`
	Allowances  *decimal.Decimal `json:"allowances,omitempty"`
	Deductions  *decimal.Decimal `json:"deductions,omitempty"`
	PF          *decimal.Decimal `json:"pf,omitempty"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
}

func (r *UpdateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	if r.BasicSalary != nil && !r.BasicSalary.IsPositive() {
		errs.Add("basic_salary", "must be greater than zero")
	}
	optional := map[string]*decimal.Decimal{
		"hra":        r.HRA,
		"allowances": r.Allowances,
		"deductions": r.Deductions,
		"pf":         r.PF,
		"tax":        r.Tax,
	}
	present := make(map[string]decimal.Decimal, len(optional))
	for field, v := range optional {
		if v != nil {
			present[field] = *v
		}
	}
	checkNonNegative(&errs, present)

	return errs.Err()
}

// Apply overlays the set fields of r on s and refreshes NetSalary.
func (r *UpdateSalaryStructureRequest) Apply(s SalaryStructure) SalaryStructure {
	if r.BasicSalary != nil {
		s.BasicSalary = *r.BasicSalary
	}
	if r.HRA != nil {
		s.HRA = *r.HRA
	}
	if r.Allowances != nil {
		s.Allowances = *r.Allowances
	}
	if r.Deductions != nil {
		s.Deductions = *r.Deductions
	}
	if r.PF != nil {
		s.PF = *r.PF
	}
	if r.Tax != nil {
		s.Tax = *r.Tax
	}
	s.NetSalary = s.ComputeNetSalary()
	return s
}

func checkNonNegative(errs *validator.ValidationErrors, amounts map[string]decimal.Decimal) {
	// fixed order keeps error output stable
	for _, field := range []string{"hra", "allowances", "deductions", "pf", "tax"} {
		if v, ok := amounts[field]; ok && !validator.IsNonNegative(v) {
			errs.Add(field, "must be non-negative")
		}
	}
}

type SalaryStructureResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	PF          decimal.Decimal `json:"pf"`
	Tax         decimal.Decimal `json:"tax"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}
