package payslip

import (
	"context"
	"io"
)

// Renderer turns a computed payslip into a document.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

type PayslipService interface {
	// Generate renders and stores the payslip for payrollID, replacing any earlier one.
	Generate(ctx context.Context, payrollID string) (PayslipResponse, error)
	GetByPayrollID(ctx context.Context, payrollID string) (PayslipResponse, error)
	Download(ctx context.Context, payrollID string) (io.ReadCloser, string, error)
	// RemoveDocument deletes a stored document. The row goes with its payroll;
	// missing files are ignored.
	RemoveDocument(ctx context.Context, filePath string) error
}
