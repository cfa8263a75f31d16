package payslip

import "errors"

var (
	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrDocumentGeneration = errors.New("payslip document generation failed")
)
