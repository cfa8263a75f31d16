package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
)

// RequireHR allows admin and hr roles.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil || !claims.Role.IsHR() {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployeeLink allows accounts linked to an employee record.
func RequireEmployeeLink(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil || claims.EmployeeID == nil {
			response.HandleError(w, user.ErrEmployeeLinkMissing)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin allows only the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil || claims.Role != user.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
