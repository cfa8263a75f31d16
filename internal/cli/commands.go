package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

var ErrAborted = errors.New("aborted by operator")

type YearEndCmd struct {
	Year int  `help:"Year to close; balances open in the following year." required:""`
	Yes  bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *YearEndCmd) Run(ctx context.Context, svc *Services, out io.Writer, prompt Prompter) error {
	if !c.Yes {
		ok, err := prompt(fmt.Sprintf("Close leave year %d and open %d?", c.Year, c.Year+1))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	printInfof(out, "Processing year-end for %d", c.Year)
	summary, err := svc.Balances.ProcessYearEnd(ctx, c.Year)
	if err != nil {
		return err
	}

	printSuccess(out, fmt.Sprintf("Opened leave year %d", summary.TargetYear))
	printField(out, "Employees processed", summary.EmployeesProcessed)
	printField(out, "Balances created", summary.BalancesCreated)
	printField(out, "Balances skipped", summary.BalancesSkipped)
	return nil
}

type PayrollCmd struct {
	Generate PayrollGenerateCmd `cmd:"" help:"Generate one employee's payroll for a month."`
}

type PayrollGenerateCmd struct {
	Employee string `help:"Employee ID." required:""`
	Month    string `help:"Payroll month (YYYY-MM)." required:""`
}

func (c *PayrollGenerateCmd) Run(ctx context.Context, svc *Services, out io.Writer) error {
	result, err := svc.Payrolls.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{
		EmployeeID: c.Employee,
		Month:      c.Month,
	})
	if err != nil {
		return err
	}

	printSuccess(out, fmt.Sprintf("Payroll %s generated", result.ID))
	printField(out, "Period", result.PeriodStart+" to "+result.PeriodEnd)
	printField(out, "Working days", result.WorkingDays)
	printField(out, "Absent days", result.AbsentDays)
	printField(out, "Gross salary", result.GrossSalary.StringFixed(2))
	printField(out, "Net pay", result.NetPay.StringFixed(2))
	printField(out, "Payment date", result.PaymentDate)
	if result.PayslipPath == nil {
		printInfof(out, "Payslip was not generated; retry with: hrctl payslip regenerate --payroll %s", result.ID)
	}
	return nil
}

type PayslipCmd struct {
	Regenerate PayslipRegenerateCmd `cmd:"" help:"Render and store a payroll's payslip again."`
}

type PayslipRegenerateCmd struct {
	Payroll string `help:"Payroll ID." required:""`
}

func (c *PayslipRegenerateCmd) Run(ctx context.Context, svc *Services, out io.Writer) error {
	result, err := svc.Payslips.Generate(ctx, c.Payroll)
	if err != nil {
		return err
	}

	printSuccess(out, "Payslip stored")
	printField(out, "Path", result.FilePath)
	return nil
}
