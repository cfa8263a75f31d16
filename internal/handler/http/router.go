package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Salary     SalaryHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Payslip    PayslipHandler
	Audit      AuditHandler
}

// missing names the first unset handler, or returns "" when all are set.
func (h Handlers) missing() string {
	switch {
	case h.Auth == nil:
		return "Auth"
	case h.Employee == nil:
		return "Employee"
	case h.Salary == nil:
		return "Salary"
	case h.Attendance == nil:
		return "Attendance"
	case h.Leave == nil:
		return "Leave"
	case h.Payroll == nil:
		return "Payroll"
	case h.Payslip == nil:
		return "Payslip"
	case h.Audit == nil:
		return "Audit"
	}
	return ""
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	if name := h.missing(); name != "" {
		panic(fmt.Sprintf("http: %s handler is not configured", name))
	}

	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/auth/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.Auth.CreateUser)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeactivateEmployee)
					r.Get("/leave-balances", h.Employee.GetLeaveBalances)

					r.Route("/salary-structure", func(r chi.Router) {
						r.Get("/", h.Salary.Get)
						r.Post("/", h.Salary.Create)
						r.Put("/", h.Salary.Update)
						r.Delete("/", h.Salary.Delete)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.ListAttendance)

				r.With(middleware.RequireHR).Put("/mark", h.Attendance.MarkAttendance)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/{id}", h.Leave.GetRequest)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/", h.Leave.ListRequests)
						r.Post("/{id}/approve", h.Leave.ApproveRequest)
						r.Post("/{id}/reject", h.Leave.RejectRequest)
					})
				})

				r.Get("/balances", h.Leave.GetMyBalances)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/balances/defaults", h.Leave.CreateDefaultBalances)
					r.Post("/year-end", h.Leave.ProcessYearEnd)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/my", h.Payroll.My)
				r.Get("/{id}/payslip/download", h.Payslip.Download)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/generate", h.Payroll.Generate)
					r.Get("/", h.Payroll.List)
					r.Get("/{id}", h.Payroll.Get)
					r.Put("/{id}", h.Payroll.Update)
					r.Delete("/{id}", h.Payroll.Delete)
					r.Post("/{id}/payslip", h.Payslip.Regenerate)
				})
			})

			r.With(middleware.RequireAdmin).Get("/audit-logs", h.Audit.List)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
