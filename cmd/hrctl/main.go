package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/cmlabs-hris/hris-payroll-go/internal/app"
	"github.com/cmlabs-hris/hris-payroll-go/internal/cli"
	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
)

func main() {
	var commands cli.Commands
	parser := kong.Must(&commands,
		kong.Name("hrctl"),
		kong.Description("Operator tools for leave balances, payroll and payslips."),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer a.Close()

	svc := &cli.Services{Balances: a.Balances, Payrolls: a.Payrolls, Payslips: a.Payslips}
	kctx.Bind(svc)
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	kctx.Bind(cli.Prompter(cli.TerminalPrompter))

	if err := kctx.Run(); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		a.Close()
		os.Exit(1)
	}
}
