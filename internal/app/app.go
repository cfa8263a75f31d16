// Package app wires configuration, storage and services into a runnable unit
// shared by the API server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/hris-payroll-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/hris-payroll-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hris-payroll-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	payslipService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payslip"
	salaryService "github.com/cmlabs-hris/hris-payroll-go/internal/service/salary"
)

type App struct {
	DB  *database.DB
	JWT jwt.Service

	Auth       auth.AuthService
	Audit      audit.AuditService
	Employees  employee.EmployeeService
	Salaries   salary.SalaryService
	Attendance attendance.AttendanceService
	Balances   *leaveService.BalanceService
	Requests   *leaveService.RequestService
	Payrolls   payroll.PayrollService
	Payslips   payslip.PayslipService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	policy, err := cfg.LeavePolicy()
	if err != nil {
		return nil, err
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT configuration: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryStructureRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	a := &App{DB: db, JWT: JWTService}
	a.Audit = auditService.NewAuditService(auditRepo)
	a.Auth = serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService)
	a.Balances = leaveService.NewBalanceService(tx, policy, leaveBalanceRepo, employeeRepo, a.Audit)
	a.Requests = leaveService.NewRequestService(tx, leaveRequestRepo, employeeRepo, a.Balances, a.Audit)
	a.Employees = employeeService.NewEmployeeService(tx, employeeRepo, a.Balances)
	a.Salaries = salaryService.NewSalaryService(tx, salaryRepo, employeeRepo, a.Audit)
	a.Attendance = attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	a.Payslips = payslipService.NewPayslipService(payslipRepo, payrollRepo, employeeRepo, pdf.NewPayslipRenderer(cfg.App.CompanyName), fileStorage)
	a.Payrolls = payrollService.NewPayrollService(
		tx,
		payrollRepo,
		employeeRepo,
		salaryRepo,
		attendanceRepo,
		leaveRequestRepo,
		a.Payslips,
		a.Audit,
		cfg.Payroll.PaymentDelayDays,
	)

	return a, nil
}

func (a *App) Close() {
	a.DB.Close()
}
