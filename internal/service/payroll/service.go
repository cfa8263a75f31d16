package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	salaryRepo     salary.SalaryStructureRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	payslips       payslip.PayslipService
	audit          audit.AuditService
	paymentDelay   int
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryStructureRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	payslipService payslip.PayslipService,
	auditService audit.AuditService,
	paymentDelayDays int,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		payslips:       payslipService,
		audit:          auditService,
		paymentDelay:   paymentDelayDays,
		now:            time.Now,
	}
}

// ========== GENERATION ==========

// GeneratePayroll computes and stores one employee's pay for one month, then
// renders the payslip. A payslip failure is logged and never undoes the payroll.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	month, err := req.Validate()
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	exists, err := s.payrollRepo.ExistsForMonth(ctx, emp.ID, month)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	}

	structure, err := s.salaryRepo.GetByEmployeeID(ctx, emp.ID)
	if errors.Is(err, salary.ErrSalaryStructureNotFound) {
		return payroll.PayrollResponse{}, payroll.ErrSalaryStructureMissing
	}
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	period, err := payroll.WorkingPeriod(emp.DateOfJoining, month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	leaves, err := s.leaveRepo.ListApprovedInRange(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to get approved leave: %w", err)
	}

	result := payroll.Calculate(payroll.CalculationInput{
		Period:               period,
		Structure:            structure,
		Attendance:           records,
		Leaves:               leaves,
		Bonus:                req.BonusOrZero(),
		AdditionalDeductions: req.AdditionalDeductionsOrZero(),
	})

	today := s.now().UTC()
	record := payroll.Payroll{
		EmployeeID:           emp.ID,
		PayrollMonth:         payroll.MonthStart(month),
		PeriodStart:          period.Start,
		PeriodEnd:            period.End,
		BasicSalary:          structure.BasicSalary,
		BasicDeduction:       result.BasicDeduction,
		AdjustedBasicSalary:  result.AdjustedBasicSalary,
		HRA:                  structure.HRA,
		Allowances:           structure.Allowances,
		GrossSalary:          result.GrossSalary,
		StandingDeductions:   result.StandingDeductions,
		AdditionalDeductions: req.AdditionalDeductionsOrZero(),
		TotalDeductions:      result.TotalDeductions,
		Bonus:                req.BonusOrZero(),
		NetPay:               result.NetPay,
		WorkingDays:          result.WorkingDays,
		PresentDays:          result.PresentDays,
		PaidLeaveDays:        result.PaidLeaveDays,
		AbsentDays:           result.AbsentDays,
		PaymentDate:          time.Date(today.Year(), today.Month(), today.Day()+s.paymentDelay, 0, 0, 0, 0, time.UTC),
		PaymentStatus:        payroll.PaymentStatusPending,
	}

	var created payroll.Payroll
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.payrollRepo.Create(ctx, record)
		if err != nil {
			return err
		}
		return s.audit.Log(ctx, req.ActorID, audit.ActionCreate, "payroll", created.ID, nil, mapToResponse(created))
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll generated",
		"payroll_id", created.ID,
		"employee_id", emp.ID,
		"month", month.Format("2006-01"),
		"present_days", result.PresentDays,
		"paid_leave_days", result.PaidLeaveDays,
		"absent_days", result.AbsentDays,
		"net_pay", created.NetPay.String(),
	)

	resp := mapToResponse(created)
	resp.PayslipPath = s.generatePayslip(ctx, created.ID)
	return resp, nil
}

// generatePayslip is best effort: errors and panics are logged, never returned.
func (s *PayrollServiceImpl) generatePayslip(ctx context.Context, payrollID string) (path *string) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Payslip generation panicked", "payroll_id", payrollID, "panic", p)
			path = nil
		}
	}()

	slip, err := s.payslips.Generate(context.WithoutCancel(ctx), payrollID)
	if err != nil {
		slog.Error("Payslip generation failed, payroll kept",
			"payroll_id", payrollID,
			"error", fmt.Errorf("%w: %w", payslip.ErrDocumentGeneration, err),
		)
		return nil
	}
	return &slip.FilePath
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	resp := mapToResponse(record)
	slip, err := s.payslips.GetByPayrollID(ctx, id)
	switch {
	case err == nil:
		resp.PayslipPath = &slip.FilePath
	case !errors.Is(err, payslip.ErrPayslipNotFound):
		slog.Warn("Failed to load payslip for payroll", "payroll_id", id, "error", err)
	}
	return resp, nil
}

func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	filter.Normalize()

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	return payroll.ListPayrollResponse{
		Data:       mapToResponses(records),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetPayrollsByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	filter := payroll.PayrollFilter{EmployeeID: &employeeID, Limit: 100, SortBy: "payroll_month"}
	filter.Normalize()
	records, _, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	return mapToResponses(records), nil
}

func (s *PayrollServiceImpl) GetPayrollsByMonth(ctx context.Context, month string) ([]payroll.PayrollResponse, error) {
	m, ok := validator.ParseMonth(month)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}

	filter := payroll.PayrollFilter{Month: &m, Limit: 100, SortBy: "employee_code", SortOrder: "asc"}
	filter.Normalize()
	records, _, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	return mapToResponses(records), nil
}

// ========== MUTATIONS ==========

func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	var updated payroll.Payroll
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.payrollRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if current.PaymentStatus == payroll.PaymentStatusPaid {
			return payroll.ErrPayrollAlreadyPaid
		}

		updated = current
		if req.Bonus != nil {
			updated.Bonus = *req.Bonus
		}
		if req.AdditionalDeductions != nil {
			updated.AdditionalDeductions = *req.AdditionalDeductions
		}
		updated.Recompute()
		if req.PaymentDate != nil {
			d, _ := time.Parse("2006-01-02", *req.PaymentDate)
			updated.PaymentDate = d
		}
		if req.PaymentStatus != nil {
			updated.PaymentStatus = payroll.PaymentStatus(*req.PaymentStatus)
		}

		if err := s.payrollRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update payroll: %w", err)
		}
		return s.audit.Log(ctx, req.ActorID, audit.ActionUpdate, "payroll", updated.ID, mapToResponse(current), mapToResponse(updated))
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	slog.Info("Payroll updated", "payroll_id", updated.ID, "payment_status", updated.PaymentStatus, "net_pay", updated.NetPay.String())
	return mapToResponse(updated), nil
}

// DeletePayroll removes the payroll; its payslip row cascades and the stored
// document is removed best effort once the delete has committed.
func (s *PayrollServiceImpl) DeletePayroll(ctx context.Context, id string, actorID string) error {
	current, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var documentPath string
	slip, err := s.payslips.GetByPayrollID(ctx, id)
	switch {
	case err == nil:
		documentPath = slip.FilePath
	case !errors.Is(err, payslip.ErrPayslipNotFound):
		return fmt.Errorf("failed to get payslip: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.payrollRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Log(ctx, actorID, audit.ActionDelete, "payroll", id, mapToResponse(current), nil)
	})
	if err != nil {
		return err
	}

	if documentPath != "" {
		if err := s.payslips.RemoveDocument(ctx, documentPath); err != nil {
			slog.Warn("Failed to remove payslip document", "payroll_id", id, "file_path", documentPath, "error", err)
		}
	}

	slog.Info("Payroll deleted", "payroll_id", id, "employee_id", current.EmployeeID)
	return nil
}

func mapToResponse(r payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		EmployeeCode:         r.EmployeeCode,
		EmployeeName:         r.EmployeeName,
		PayrollMonth:         r.PayrollMonth.Format("2006-01"),
		PeriodStart:          r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            r.PeriodEnd.Format("2006-01-02"),
		BasicSalary:          r.BasicSalary,
		BasicDeduction:       r.BasicDeduction,
		AdjustedBasicSalary:  r.AdjustedBasicSalary,
		HRA:                  r.HRA,
		Allowances:           r.Allowances,
		GrossSalary:          r.GrossSalary,
		AdditionalDeductions: r.AdditionalDeductions,
		TotalDeductions:      r.TotalDeductions,
		Bonus:                r.Bonus,
		NetPay:               r.NetPay,
		WorkingDays:          r.WorkingDays,
		PresentDays:          r.PresentDays,
		PaidLeaveDays:        r.PaidLeaveDays,
		AbsentDays:           r.AbsentDays,
		PaymentDate:          r.PaymentDate.Format("2006-01-02"),
		PaymentStatus:        string(r.PaymentStatus),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func mapToResponses(records []payroll.Payroll) []payroll.PayrollResponse {
	result := make([]payroll.PayrollResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToResponse(r))
	}
	return result
}
