package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(t *testing.T, js jwt.Service, mw ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return jwtauth.Verifier(js.JWTAuth())(AuthRequired(h))
}

func bearer(t *testing.T, js jwt.Service, role user.Role, employeeID *string) string {
	t.Helper()
	token, _, err := js.GenerateAccessToken("user-1", "u@example.com", role, employeeID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequired(t *testing.T) {
	js, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := protected(t, js)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, js, user.RoleEmployee, nil))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireHR(t *testing.T) {
	js, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := protected(t, js, RequireHR)

	cases := map[user.Role]int{
		user.RoleAdmin:    http.StatusNoContent,
		user.RoleHR:       http.StatusNoContent,
		user.RoleEmployee: http.StatusForbidden,
	}
	for role, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, js, role, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, string(role))
	}
}

func TestRequireEmployeeLink(t *testing.T) {
	js, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := protected(t, js, RequireEmployeeLink)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, js, user.RoleHR, nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	empID := "emp-1"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, js, user.RoleEmployee, &empID))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
