package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	auth.AuthService
	login func(req auth.LoginRequest) (auth.TokenResponse, error)
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return f.login(req)
}

type fakeRequestService struct {
	leave.RequestService
	created    leave.CreateLeaveRequestRequest
	approverID string
	request    leave.LeaveRequestResponse
}

func (f *fakeRequestService) CreateLeaveRequest(_ context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	f.created = req
	return leave.LeaveRequestResponse{ID: "req-1", EmployeeID: req.EmployeeID, Status: "Pending"}, nil
}

func (f *fakeRequestService) ApproveLeaveRequest(_ context.Context, id, approverID string) (leave.LeaveRequestResponse, error) {
	f.approverID = approverID
	return leave.LeaveRequestResponse{ID: id, Status: "Approved"}, nil
}

func (f *fakeRequestService) GetLeaveRequest(_ context.Context, id string) (leave.LeaveRequestResponse, error) {
	if id != f.request.ID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	return f.request, nil
}

type fakePayrollService struct {
	payroll.PayrollService
	record      payroll.PayrollResponse
	generateErr error
	deletedBy   string
}

func (f *fakePayrollService) DeletePayroll(_ context.Context, id string, actorID string) error {
	if id != f.record.ID {
		return payroll.ErrPayrollNotFound
	}
	f.deletedBy = actorID
	return nil
}

func (f *fakePayrollService) GetPayroll(_ context.Context, id string) (payroll.PayrollResponse, error) {
	if id != f.record.ID {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotFound
	}
	return f.record, nil
}

func (f *fakePayrollService) GeneratePayroll(_ context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if f.generateErr != nil {
		return payroll.PayrollResponse{}, f.generateErr
	}
	return payroll.PayrollResponse{ID: "pay-1", EmployeeID: req.EmployeeID}, nil
}

type fakePayslipService struct {
	payslip.PayslipService
	body string
}

func (f *fakePayslipService) Download(_ context.Context, payrollID string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader(f.body)), "payslip-" + payrollID + ".pdf", nil
}

type testEnv struct {
	router   *chi.Mux
	jwt      jwt.Service
	requests *fakeRequestService
	payrolls *fakePayrollService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	js, err := jwt.NewJWTService("handler-test-secret", "1h")
	require.NoError(t, err)

	cfg := &config.Config{
		App:  config.AppConfig{Name: "hris-payroll", Version: "test", Env: "test", LogLevel: "error"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	requests := &fakeRequestService{request: leave.LeaveRequestResponse{ID: "req-7", EmployeeID: "emp-other"}}
	payrolls := &fakePayrollService{record: payroll.PayrollResponse{ID: "pay-9", EmployeeID: "emp-1"}}
	authSvc := &fakeAuthService{login: func(req auth.LoginRequest) (auth.TokenResponse, error) {
		if req.Password != "secret123" {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{AccessToken: "tok", TokenType: "Bearer"}, nil
	}}

	h := Handlers{
		Auth:       NewAuthHandler(authSvc),
		Employee:   NewEmployeeHandler(nil, nil),
		Salary:     NewSalaryHandler(nil),
		Attendance: NewAttendanceHandler(nil),
		Leave:      NewLeaveHandler(requests, nil),
		Payroll:    NewPayrollHandler(payrolls),
		Payslip:    NewPayslipHandler(&fakePayslipService{body: "%PDF-1.3 test"}, payrolls),
		Audit:      NewAuditHandler(nil),
	}

	return &testEnv{router: NewRouter(cfg, js, h), jwt: js, requests: requests, payrolls: payrolls}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}, role user.Role, employeeID *string) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, _, err := e.jwt.GenerateAccessToken("user-1", "u@example.com", role, employeeID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func strPtr(s string) *string { return &s }

func TestNewRouter_RequiresEveryHandler(t *testing.T) {
	js, err := jwt.NewJWTService("handler-test-secret", "1h")
	require.NoError(t, err)
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	assert.PanicsWithValue(t, "http: Employee handler is not configured", func() {
		NewRouter(cfg, js, Handlers{Auth: NewAuthHandler(nil)})
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.co", "password": "secret123"}, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok"`)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.co", "password": "nope"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/payrolls/my", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHRRoutesRejectEmployees(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/payrolls/generate", map[string]string{"employee_id": "emp-1", "month": "2024-01"}, user.RoleEmployee, strPtr("emp-1"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateLeaveRequest_PinsEmployee(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{"leave_type": "Casual", "from_date": "2024-03-04", "to_date": "2024-03-05"}
	rec := env.do(t, http.MethodPost, "/api/v1/leave/requests", body, user.RoleEmployee, strPtr("emp-1"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-1", env.requests.created.EmployeeID)

	body["employee_id"] = "emp-2"
	rec = env.do(t, http.MethodPost, "/api/v1/leave/requests", body, user.RoleEmployee, strPtr("emp-1"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/leave/requests", body, user.RoleHR, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-2", env.requests.created.EmployeeID)
}

func TestGetLeaveRequest_HidesOtherEmployees(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/leave/requests/req-7", nil, user.RoleEmployee, strPtr("emp-1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/leave/requests/req-7", nil, user.RoleHR, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApproveLeaveRequest_RecordsApprover(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/leave/requests/req-7/approve", nil, user.RoleHR, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", env.requests.approverID)
}

func TestGeneratePayroll_Conflict(t *testing.T) {
	env := newTestEnv(t)
	env.payrolls.generateErr = payroll.ErrPayrollAlreadyExists

	rec := env.do(t, http.MethodPost, "/api/v1/payrolls/generate", map[string]string{"employee_id": "emp-1", "month": "2024-01"}, user.RoleAdmin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDownloadPayslip(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/payrolls/pay-9/payslip/download", nil, user.RoleEmployee, strPtr("emp-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-pay-9.pdf")
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/payrolls/pay-9/payslip/download", nil, user.RoleEmployee, strPtr("emp-2"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletePayroll_RecordsActor(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/v1/payrolls/pay-9", nil, user.RoleHR, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", env.payrolls.deletedBy)

	rec = env.do(t, http.MethodDelete, "/api/v1/payrolls/pay-404", nil, user.RoleHR, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
