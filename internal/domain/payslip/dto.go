package payslip

import "time"

type PayslipResponse struct {
	ID            string    `json:"id"`
	PayrollID     string    `json:"payroll_id"`
	FilePath      string    `json:"file_path"`
	URL           string    `json:"url,omitempty"`
	GeneratedDate time.Time `json:"generated_date"`
}
