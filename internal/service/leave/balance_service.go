package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type BalanceService struct {
	tx     database.Transactor
	policy leave.Policy
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	audit audit.AuditService
	now   func() time.Time
}

func NewBalanceService(tx database.Transactor, policy leave.Policy, leaveBalanceRepository leave.LeaveBalanceRepository, employeeRepository employee.EmployeeRepository, auditService audit.AuditService) *BalanceService {
	return &BalanceService{
		tx:                     tx,
		policy:                 policy,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
		audit:                  auditService,
		now:                    time.Now,
	}
}

// CreateDefaultBalances opens the policy's tracked balances for year. Rows that
// already exist are left untouched, so repeated calls are harmless.
func (s *BalanceService) CreateDefaultBalances(ctx context.Context, employeeID string, year int) (int, error) {
	created := 0
	for _, t := range leave.TrackedLeaveTypes {
		b := leave.NewLeaveBalance(employeeID, t, year, s.policy.Allocation(t))
		inserted, err := s.LeaveBalanceRepository.InsertIfAbsent(ctx, b)
		if err != nil {
			return created, fmt.Errorf("failed to create %s balance: %w", t, err)
		}
		if !inserted {
			slog.Debug("Leave balance already exists", "employee_id", employeeID, "leave_type", t, "year", year)
			continue
		}
		created++
	}

	slog.Info("Default leave balances created", "employee_id", employeeID, "year", year, "created", created)
	return created, nil
}

func (s *BalanceService) HasSufficientBalance(ctx context.Context, employeeID string, leaveType leave.LeaveType, requestedDays decimal.Decimal, year int) (bool, error) {
	if !leaveType.IsBalanceTracked() {
		return true, nil
	}

	balance, err := s.LeaveBalanceRepository.Get(ctx, employeeID, leaveType, year)
	if errors.Is(err, leave.ErrLeaveBalanceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance.RemainingDays.GreaterThanOrEqual(requestedDays), nil
}

// UpdateBalance records usedDays against the balance. It does not clamp;
// callers check HasSufficientBalance first.
func (s *BalanceService) UpdateBalance(ctx context.Context, employeeID string, leaveType leave.LeaveType, usedDays decimal.Decimal, year int) error {
	if !leaveType.IsBalanceTracked() {
		return nil
	}

	balance, err := s.LeaveBalanceRepository.AddUsage(ctx, employeeID, leaveType, year, usedDays)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	slog.Info("Leave balance consumed",
		"employee_id", employeeID,
		"leave_type", leaveType,
		"year", year,
		"used_days", usedDays.String(),
		"remaining_days", balance.RemainingDays.String(),
	)
	return nil
}

// ProcessYearEnd opens year+1 balances for every employee, carrying over
// min(remaining, cap) of the carried type. The whole batch commits or none of it.
func (s *BalanceService) ProcessYearEnd(ctx context.Context, year int) (leave.YearEndSummary, error) {
	summary := leave.YearEndSummary{Year: year, TargetYear: year + 1}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employees, err := s.EmployeeRepository.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		for _, emp := range employees {
			carry := decimal.Zero
			current, err := s.LeaveBalanceRepository.Get(ctx, emp.ID, s.policy.CarryForwardType, year)
			switch {
			case err == nil:
				carry = s.policy.CarryForward(current.RemainingDays)
			case errors.Is(err, leave.ErrLeaveBalanceNotFound):
			default:
				return fmt.Errorf("failed to get %s balance for employee %s: %w", s.policy.CarryForwardType, emp.ID, err)
			}

			for _, b := range s.policy.NextYearBalances(emp.ID, summary.TargetYear, carry) {
				inserted, err := s.LeaveBalanceRepository.InsertIfAbsent(ctx, b)
				if err != nil {
					return fmt.Errorf("failed to open %s balance for employee %s: %w", b.LeaveType, emp.ID, err)
				}
				if inserted {
					summary.BalancesCreated++
				} else {
					summary.BalancesSkipped++
				}
			}
			summary.EmployeesProcessed++
		}

		return s.audit.Log(ctx, "", audit.ActionProcess, "leave_year_end", fmt.Sprintf("%d", year), nil, summary)
	})
	if err != nil {
		slog.Error("Leave year-end processing failed", "year", year, "error", err)
		return leave.YearEndSummary{}, err
	}

	slog.Info("Leave year-end processed",
		"year", year,
		"employees", summary.EmployeesProcessed,
		"created", summary.BalancesCreated,
		"skipped", summary.BalancesSkipped,
	)
	return summary, nil
}

func (s *BalanceService) GetEmployeeLeaveBalances(ctx context.Context, employeeID string, year *int) ([]leave.LeaveBalanceResponse, error) {
	y := s.now().Year()
	if year != nil {
		y = *year
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.DateOfJoining.Year() > y {
		return nil, leave.ErrYearBeforeJoining
	}

	balances, err := s.LeaveBalanceRepository.ListByEmployeeYear(ctx, employeeID, y)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	if len(balances) == 0 {
		return nil, leave.ErrBalancesNotCreated
	}

	resp := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.LeaveBalanceResponse{
			LeaveType:     string(b.LeaveType),
			Year:          b.Year,
			AllocatedDays: b.AllocatedDays,
			UsedDays:      b.UsedDays,
			RemainingDays: b.RemainingDays,
		})
	}
	return resp, nil
}
