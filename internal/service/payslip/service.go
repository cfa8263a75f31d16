package payslip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/storage"
)

type PayslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	renderer     payslip.Renderer
	storage      storage.FileStorage
	now          func() time.Time
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	renderer payslip.Renderer,
	fileStorage storage.FileStorage,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		payslipRepo:  payslipRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		renderer:     renderer,
		storage:      fileStorage,
		now:          time.Now,
	}
}

func (s *PayslipServiceImpl) Generate(ctx context.Context, payrollID string) (payslip.PayslipResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	content, err := s.renderer.Render(buildDocument(record, emp))
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("%w: %w", payslip.ErrDocumentGeneration, err)
	}

	key := documentKey(record, s.renderer.Extension())
	stored, err := s.storage.Put(ctx, key, bytes.NewReader(content), s.renderer.ContentType())
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to store payslip: %w", err)
	}

	slip, err := s.payslipRepo.Upsert(ctx, payslip.Payslip{
		PayrollID:     record.ID,
		FilePath:      stored,
		GeneratedDate: s.now().UTC(),
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored); delErr != nil {
			slog.Warn("Failed to remove orphaned payslip document", "payroll_id", record.ID, "file_path", stored, "error", delErr)
		}
		return payslip.PayslipResponse{}, fmt.Errorf("failed to save payslip: %w", err)
	}

	slog.Info("Payslip generated", "payroll_id", record.ID, "employee_id", emp.ID, "file_path", stored, "size_bytes", len(content))
	return s.mapToResponse(slip), nil
}

func (s *PayslipServiceImpl) GetByPayrollID(ctx context.Context, payrollID string) (payslip.PayslipResponse, error) {
	slip, err := s.payslipRepo.GetByPayrollID(ctx, payrollID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return s.mapToResponse(slip), nil
}

// Download returns the stored document and a file name for Content-Disposition.
func (s *PayslipServiceImpl) Download(ctx context.Context, payrollID string) (io.ReadCloser, string, error) {
	slip, err := s.payslipRepo.GetByPayrollID(ctx, payrollID)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.storage.Open(ctx, slip.FilePath)
	if errors.Is(err, storage.ErrFileNotFound) {
		return nil, "", payslip.ErrPayslipNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open payslip: %w", err)
	}
	return rc, fmt.Sprintf("payslip-%s.%s", payrollID, s.renderer.Extension()), nil
}

func (s *PayslipServiceImpl) RemoveDocument(ctx context.Context, filePath string) error {
	return s.storage.Delete(ctx, filePath)
}

func documentKey(record payroll.Payroll, ext string) string {
	return fmt.Sprintf("payslips/%s/%s.%s", record.PayrollMonth.Format("2006-01"), record.ID, ext)
}

func buildDocument(record payroll.Payroll, emp employee.Employee) payslip.Document {
	return payslip.Document{
		PayrollID:            record.ID,
		EmployeeCode:         emp.EmployeeCode,
		EmployeeName:         emp.FullName,
		Department:           emp.Department,
		Designation:          emp.Designation,
		PayrollMonth:         record.PayrollMonth,
		PeriodStart:          record.PeriodStart,
		PeriodEnd:            record.PeriodEnd,
		PaymentDate:          record.PaymentDate,
		WorkingDays:          record.WorkingDays,
		PresentDays:          record.PresentDays,
		PaidLeaveDays:        record.PaidLeaveDays,
		AbsentDays:           record.AbsentDays,
		BasicSalary:          record.BasicSalary,
		BasicDeduction:       record.BasicDeduction,
		AdjustedBasicSalary:  record.AdjustedBasicSalary,
		HRA:                  record.HRA,
		Allowances:           record.Allowances,
		GrossSalary:          record.GrossSalary,
		StandingDeductions:   record.StandingDeductions,
		AdditionalDeductions: record.AdditionalDeductions,
		TotalDeductions:      record.TotalDeductions,
		Bonus:                record.Bonus,
		NetPay:               record.NetPay,
	}
}

func (s *PayslipServiceImpl) mapToResponse(slip payslip.Payslip) payslip.PayslipResponse {
	return payslip.PayslipResponse{
		ID:            slip.ID,
		PayrollID:     slip.PayrollID,
		FilePath:      slip.FilePath,
		URL:           s.storage.URL(slip.FilePath),
		GeneratedDate: slip.GeneratedDate,
	}
}
