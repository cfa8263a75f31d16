package pdf

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// PayslipRenderer lays out a payslip on a single A4 page.
type PayslipRenderer struct {
	companyName string
}

func NewPayslipRenderer(companyName string) *PayslipRenderer {
	return &PayslipRenderer{companyName: companyName}
}

func (r *PayslipRenderer) ContentType() string { return "application/pdf" }

func (r *PayslipRenderer) Extension() string { return "pdf" }

func (r *PayslipRenderer) Render(doc payslip.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", doc.EmployeeCode, doc.PayrollMonth.Format("January 2006")), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Payslip for "+doc.PayrollMonth.Format("January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	info := [][2]string{
		{"Employee", fmt.Sprintf("%s (%s)", doc.EmployeeName, doc.EmployeeCode)},
		{"Department", doc.Department},
		{"Designation", doc.Designation},
		{"Period", fmt.Sprintf("%s to %s", doc.PeriodStart.Format("2006-01-02"), doc.PeriodEnd.Format("2006-01-02"))},
		{"Payment date", doc.PaymentDate.Format("2006-01-02")},
		{"Working days", fmt.Sprintf("%d (present %d, paid leave %d, absent %d)", doc.WorkingDays, doc.PresentDays, doc.PaidLeaveDays, doc.AbsentDays)},
	}
	for _, row := range info {
		pdf.CellFormat(40, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Earnings")
	amountRow(pdf, "Basic salary", doc.BasicSalary)
	amountRow(pdf, "Absence deduction", doc.BasicDeduction.Neg())
	amountRow(pdf, "Adjusted basic", doc.AdjustedBasicSalary)
	amountRow(pdf, "HRA", doc.HRA)
	amountRow(pdf, "Allowances", doc.Allowances)
	totalRow(pdf, "Gross salary", doc.GrossSalary)
	pdf.Ln(3)

	section(pdf, "Deductions")
	amountRow(pdf, "Standing deductions", doc.StandingDeductions)
	amountRow(pdf, "Additional deductions", doc.AdditionalDeductions)
	totalRow(pdf, "Total deductions", doc.TotalDeductions)
	pdf.Ln(3)

	amountRow(pdf, "Bonus", doc.Bonus)
	pdf.SetFont("Helvetica", "B", 12)
	totalRow(pdf, "Net pay", doc.NetPay)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func amountRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}

func totalRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(120, 8, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, amount.StringFixed(2), "T", 1, "R", false, 0, "")
}
