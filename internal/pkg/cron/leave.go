package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
)

type LeaveJobs struct {
	balances leave.BalanceService
	now      func() time.Time
}

func NewLeaveJobs(balances leave.BalanceService) *LeaveJobs {
	return &LeaveJobs{balances: balances, now: time.Now}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("leave_year_end_rollover", 1*time.Hour, j.YearEndRollover)
}

// YearEndRollover carries the previous year's balances forward. It only acts
// during 00:00-00:59 UTC on January 1; reruns are skipped row by row.
func (j *LeaveJobs) YearEndRollover(ctx context.Context) error {
	now := j.now().UTC()
	if now.Month() != time.January || now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	year := now.Year() - 1
	slog.Info("Cron: starting leave year-end rollover", "year", year)

	summary, err := j.balances.ProcessYearEnd(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to process year end %d: %w", year, err)
	}

	slog.Info("Cron: leave year-end rollover completed",
		"year", summary.Year,
		"target_year", summary.TargetYear,
		"employees_processed", summary.EmployeesProcessed,
		"balances_created", summary.BalancesCreated,
		"balances_skipped", summary.BalancesSkipped,
	)
	return nil
}
