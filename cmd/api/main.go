package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/app"
	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cron"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	if cfg.Admin.Email != "" {
		if err := a.Auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal("Failed to bootstrap admin account: ", err)
		}
	}

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(a.Balances).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, a.JWT, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(a.Auth),
		Employee:   appHTTP.NewEmployeeHandler(a.Employees, a.Balances),
		Salary:     appHTTP.NewSalaryHandler(a.Salaries),
		Attendance: appHTTP.NewAttendanceHandler(a.Attendance),
		Leave:      appHTTP.NewLeaveHandler(a.Requests, a.Balances),
		Payroll:    appHTTP.NewPayrollHandler(a.Payrolls),
		Payslip:    appHTTP.NewPayslipHandler(a.Payslips, a.Payrolls),
		Audit:      appHTTP.NewAuditHandler(a.Audit),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
