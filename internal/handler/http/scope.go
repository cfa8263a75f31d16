package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// scopeEmployee resolves which employee a request acts on. HR and admin may
// name any employee; everyone else is pinned to their own record.
func scopeEmployee(r *http.Request, requested string) (string, jwt.Claims, error) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		return "", jwt.Claims{}, auth.ErrInvalidToken
	}
	if claims.Role.IsHR() {
		if requested == "" && claims.EmployeeID != nil {
			return *claims.EmployeeID, claims, nil
		}
		return requested, claims, nil
	}
	if claims.EmployeeID == nil {
		return "", claims, user.ErrEmployeeLinkMissing
	}
	if requested != "" && requested != *claims.EmployeeID {
		return "", claims, user.ErrHRAccessRequired
	}
	return *claims.EmployeeID, claims, nil
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func optionalYear(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 {
		var errs validator.ValidationErrors
		errs.Add("year", "must be a valid year")
		return nil, errs
	}
	return &year, nil
}

// actorID is the authenticated user recorded against state changes.
func actorID(r *http.Request) (string, error) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	return claims.UserID, nil
}
