package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	EmployeeID           string           `json:"employee_id"`
	Month                string           `json:"month"` // YYYY-MM
	Bonus                *decimal.Decimal `json:"bonus,omitempty"`
	AdditionalDeductions *decimal.Decimal `json:"additional_deductions,omitempty"`
	ActorID              string           `json:"-"`
}

// Validate returns the parsed month on success.
func (r *GeneratePayrollRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs.Add("employee_id", "is required")
	}
	month, ok := validator.ParseMonth(r.Month)
	if !ok {
		errs.Add("month", "must be in YYYY-MM format")
	}
	if r.Bonus != nil && !validator.IsNonNegative(*r.Bonus) {
		errs.Add("bonus", "must be non-negative")
	}
	if r.AdditionalDeductions != nil && !validator.IsNonNegative(*r.AdditionalDeductions) {
		errs.Add("additional_deductions", "must be non-negative")
	}

	if err := errs.Err(); err != nil {
		return time.Time{}, err
	}
	return month, nil
}

func (r *GeneratePayrollRequest) BonusOrZero() decimal.Decimal {
	if r.Bonus == nil {
		return decimal.Zero
	}
	return *r.Bonus
}

func (r *GeneratePayrollRequest) AdditionalDeductionsOrZero() decimal.Decimal {
	if r.AdditionalDeductions == nil {
		return decimal.Zero
	}
	return *r.AdditionalDeductions
}

type UpdatePayrollRequest struct {
	ID                   string           `json:"-"`
	Bonus                *decimal.Decimal `json:"bonus,omitempty"`
	AdditionalDeductions *decimal.Decimal `json:"additional_deductions,omitempty"`
	PaymentDate          *string          `json:"payment_date,omitempty"`
	PaymentStatus        *string          `json:"payment_status,omitempty"`
	ActorID              string           `json:"-"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		errs.Add("id", "is required")
	}
	if r.Bonus != nil && !validator.IsNonNegative(*r.Bonus) {
		errs.Add("bonus", "must be non-negative")
	}
	if r.AdditionalDeductions != nil && !validator.IsNonNegative(*r.AdditionalDeductions) {
		errs.Add("additional_deductions", "must be non-negative")
	}
	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs.Add("payment_date", "must be in YYYY-MM-DD format")
		}
	}
	if r.PaymentStatus != nil && !PaymentStatus(*r.PaymentStatus).IsValid() {
		errs.Add("payment_status", "must be Pending, Processed or Paid")
	}
	if r.Bonus == nil && r.AdditionalDeductions == nil && r.PaymentDate == nil && r.PaymentStatus == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

type PayrollFilter struct {
	EmployeeID *string
	Month      *time.Time
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (f *PayrollFilter) Normalize() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}

type PayrollResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	PayrollMonth string  `json:"payroll_month"`
	PeriodStart  string  `json:"period_start"`
	PeriodEnd    string  `json:"period_end"`

	BasicSalary          decimal.Decimal `json:"basic_salary"`
	BasicDeduction       decimal.Decimal `json:"basic_deduction"`
	AdjustedBasicSalary  decimal.Decimal `json:"adjusted_basic_salary"`
	HRA                  decimal.Decimal `json:"hra"`
	Allowances           decimal.Decimal `json:"allowances"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	AdditionalDeductions decimal.Decimal `json:"additional_deductions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	Bonus                decimal.Decimal `json:"bonus"`
	NetPay               decimal.Decimal `json:"net_pay"`

	WorkingDays   int `json:"working_days"`
	PresentDays   int `json:"present_days"`
	PaidLeaveDays int `json:"paid_leave_days"`
	AbsentDays    int `json:"absent_days"`

	PaymentDate   string    `json:"payment_date"`
	PaymentStatus string    `json:"payment_status"`
	PayslipPath   *string   `json:"payslip_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
