// Package cli implements hrctl, the operator command line for batch HR jobs.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(22)
)

// Services is what the commands operate on. It is bound into kong so every
// Run method can ask for it.
type Services struct {
	Balances leave.BalanceService
	Payrolls payroll.PayrollService
	Payslips payslip.PayslipService
}

type Commands struct {
	YearEnd YearEndCmd `cmd:"" name:"year-end" help:"Roll leave balances from one year into the next."`
	Payroll PayrollCmd `cmd:"" help:"Payroll operations."`
	Payslip PayslipCmd `cmd:"" help:"Payslip operations."`
}

// Prompter asks the operator to confirm a destructive or bulk action.
type Prompter func(question string) (bool, error)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", successStyle.Render(successSymbol), message)
}

func PrintError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", errorStyle.Render(errorSymbol), errorStyle.Render(message))
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), fmt.Sprintf(format, args...))
}

func printField(w io.Writer, label string, value interface{}) {
	_, _ = fmt.Fprintf(w, "  %s %v\n", labelStyle.Render(label), value)
}

// TerminalPrompter confirms through a huh form. Without a terminal it
// answers no, so unattended runs must pass --yes.
func TerminalPrompter(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
