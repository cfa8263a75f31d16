package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrHRAccessRequired), errors.Is(err, user.ErrEmployeeLinkMissing):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, err.Error())

	// Salary
	case errors.Is(err, salary.ErrSalaryStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, salary.ErrSalaryStructureExists):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrNegativeAmount):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn), errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidCheckOut), errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrLeaveBalanceNotFound),
		errors.Is(err, leave.ErrBalancesNotCreated),
		errors.Is(err, leave.ErrYearBeforeJoining):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrOverlappingLeave), errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrReasonRequired),
		errors.Is(err, leave.ErrHalfDaySpansMultiDays):
		BadRequest(w, err.Error(), nil)

	// Payroll
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists), errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrSalaryStructureMissing):
		InvalidOperation(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Payslip
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrDocumentGeneration):
		InternalServerError(w, err.Error())

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
