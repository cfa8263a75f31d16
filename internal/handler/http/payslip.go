package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayslipHandler interface {
	Regenerate(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
	payrollService payroll.PayrollService
}

func NewPayslipHandler(payslipService payslip.PayslipService, payrollService payroll.PayrollService) PayslipHandler {
	return &payslipHandlerImpl{
		payslipService: payslipService,
		payrollService: payrollService,
	}
}

func (h *payslipHandlerImpl) Regenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.Generate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", result)
}

// Download streams the stored document. Employees may fetch only their own.
func (h *payslipHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	payrollID := chi.URLParam(r, "id")

	record, err := h.payrollService.GetPayroll(r.Context(), payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if _, _, err := scopeEmployee(r, record.EmployeeID); err != nil {
		response.HandleError(w, payroll.ErrPayrollNotFound)
		return
	}

	rc, filename, err := h.payslipService.Download(r.Context(), payrollID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("failed to stream payslip", "payroll_id", payrollID, "error", err)
	}
}
