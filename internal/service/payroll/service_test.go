package payroll

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayrollRepo struct {
	rows      map[string]payroll.Payroll
	deleteErr error
}

func (f *fakePayrollRepo) Create(_ context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	for _, r := range f.rows {
		if r.EmployeeID == record.EmployeeID && r.PayrollMonth.Equal(record.PayrollMonth) {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
	}
	record.ID = "pay-1"
	f.rows[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	r, ok := f.rows[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) ExistsForMonth(_ context.Context, employeeID string, month time.Time) (bool, error) {
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.PayrollMonth.Equal(payroll.MonthStart(month)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	var out []payroll.Payroll
	for _, r := range f.rows {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) Update(_ context.Context, record payroll.Payroll) error {
	f.rows[record.ID] = record
	return nil
}

func (f *fakePayrollRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeSalaryRepo struct {
	salary.SalaryStructureRepository
	rows map[string]salary.SalaryStructure
}

func (f *fakeSalaryRepo) GetByEmployeeID(_ context.Context, employeeID string) (salary.SalaryStructure, error) {
	s, ok := f.rows[employeeID]
	if !ok {
		return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
	}
	return s, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.rows {
		if a.EmployeeID == employeeID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leave.LeaveRequestRepository
	rows []leave.LeaveRequest
}

func (f *fakeLeaveRepo) ListApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	probe := leave.LeaveRequest{FromDate: from, ToDate: to}
	var out []leave.LeaveRequest
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.Status == leave.LeaveRequestStatusApproved && r.Overlaps(probe) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePayslips struct {
	generateErr error
	panics      bool
	generated   []string
	removed     []string
}

func (f *fakePayslips) Generate(_ context.Context, payrollID string) (payslip.PayslipResponse, error) {
	if f.panics {
		panic("renderer exploded")
	}
	if f.generateErr != nil {
		return payslip.PayslipResponse{}, f.generateErr
	}
	f.generated = append(f.generated, payrollID)
	return payslip.PayslipResponse{PayrollID: payrollID, FilePath: "payslips/2024-01/" + payrollID + ".pdf"}, nil
}

func (f *fakePayslips) GetByPayrollID(_ context.Context, payrollID string) (payslip.PayslipResponse, error) {
	for _, id := range f.generated {
		if id == payrollID {
			return payslip.PayslipResponse{PayrollID: id, FilePath: "payslips/2024-01/" + id + ".pdf"}, nil
		}
	}
	return payslip.PayslipResponse{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslips) Download(context.Context, string) (io.ReadCloser, string, error) {
	return nil, "", payslip.ErrPayslipNotFound
}

func (f *fakePayslips) RemoveDocument(_ context.Context, filePath string) error {
	f.removed = append(f.removed, filePath)
	return nil
}

type fakeAudit struct {
	audit.AuditService
	actions []audit.Action
	actors  []string
}

func (f *fakeAudit) Log(_ context.Context, actorID string, action audit.Action, _, _ string, _, _ any) error {
	f.actions = append(f.actions, action)
	f.actors = append(f.actors, actorID)
	return nil
}

type fixture struct {
	svc        *PayrollServiceImpl
	payrolls   *fakePayrollRepo
	attendance *fakeAttendanceRepo
	leaves     *fakeLeaveRepo
	payslips   *fakePayslips
	audit      *fakeAudit
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture() fixture {
	f := fixture{
		payrolls:   &fakePayrollRepo{rows: map[string]payroll.Payroll{}},
		attendance: &fakeAttendanceRepo{},
		leaves:     &fakeLeaveRepo{},
		payslips:   &fakePayslips{},
		audit:      &fakeAudit{},
	}
	employees := &fakeEmployeeRepo{rows: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", DateOfJoining: date(2024, time.January, 10)},
		"emp-2": {ID: "emp-2", DateOfJoining: date(2022, time.May, 1)},
		"emp-3": {ID: "emp-3", DateOfJoining: date(2024, time.March, 1)},
	}}
	salaries := &fakeSalaryRepo{rows: map[string]salary.SalaryStructure{
		"emp-1": {EmployeeID: "emp-1", BasicSalary: decimal.NewFromInt(31000), HRA: decimal.NewFromInt(5000), PF: decimal.NewFromInt(1800)},
		"emp-3": {EmployeeID: "emp-3", BasicSalary: decimal.NewFromInt(20000)},
	}}

	svc := NewPayrollService(passthroughTx{}, f.payrolls, employees, salaries, f.attendance, f.leaves, f.payslips, f.audit, 5).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.February, 1, 9, 30, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestGeneratePayroll_MidMonthJoiner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Present every weekday from the 15th; the 10th to 12th stay absent.
	for d := date(2024, time.January, 15); !d.After(date(2024, time.January, 31)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			f.attendance.rows = append(f.attendance.rows, attendance.Attendance{EmployeeID: "emp-1", Date: d, Status: attendance.StatusPresent})
		}
	}

	resp, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01", ActorID: "hr-1"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01", resp.PayrollMonth)
	assert.Equal(t, "2024-01-10", resp.PeriodStart)
	assert.Equal(t, "2024-01-31", resp.PeriodEnd)
	assert.Equal(t, 16, resp.WorkingDays)
	assert.Equal(t, 3, resp.AbsentDays)
	assert.Equal(t, "4227.27", resp.BasicDeduction.StringFixed(2))
	assert.Equal(t, "26772.73", resp.AdjustedBasicSalary.StringFixed(2))
	assert.Equal(t, "31772.73", resp.GrossSalary.StringFixed(2))
	assert.Equal(t, "29972.73", resp.NetPay.StringFixed(2))
	assert.Equal(t, "2024-02-06", resp.PaymentDate)
	assert.Equal(t, "Pending", resp.PaymentStatus)
	require.NotNil(t, resp.PayslipPath)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, f.audit.actions)
}

func TestGeneratePayroll_PaidLeaveIsNotDeducted(t *testing.T) {
	f := newFixture()
	f.leaves.rows = []leave.LeaveRequest{{
		EmployeeID: "emp-1",
		LeaveType:  leave.LeaveTypeEarned,
		Status:     leave.LeaveRequestStatusApproved,
		FromDate:   date(2024, time.January, 10),
		ToDate:     date(2024, time.January, 12),
	}}

	resp, err := f.svc.GeneratePayroll(context.Background(), payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.PaidLeaveDays)
	assert.Equal(t, 13, resp.AbsentDays)
}

func TestGeneratePayroll_Preconditions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "ghost", Month: "2024-01"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-2", Month: "2024-01"})
	assert.ErrorIs(t, err, payroll.ErrSalaryStructureMissing)

	_, err = f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-3", Month: "2024-01"})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)
	_, err = f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
	assert.Len(t, f.payrolls.rows, 1)

	_, err = f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "January"})
	assert.Error(t, err)
}

func TestGeneratePayroll_PayslipFailureKeepsPayroll(t *testing.T) {
	f := newFixture()
	f.payslips.generateErr = errors.New("disk full")

	resp, err := f.svc.GeneratePayroll(context.Background(), payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)
	assert.Nil(t, resp.PayslipPath)
	assert.Len(t, f.payrolls.rows, 1)

	f = newFixture()
	f.payslips.panics = true
	resp, err = f.svc.GeneratePayroll(context.Background(), payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)
	assert.Nil(t, resp.PayslipPath)
	assert.Len(t, f.payrolls.rows, 1)
}

func TestUpdatePayroll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)

	bonus := decimal.NewFromInt(1000)
	updated, err := f.svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: created.ID, Bonus: &bonus})
	require.NoError(t, err)
	assert.True(t, updated.NetPay.Equal(created.NetPay.Add(bonus)))

	paid := "Paid"
	_, err = f.svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: created.ID, PaymentStatus: &paid})
	require.NoError(t, err)

	_, err = f.svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: created.ID, Bonus: &bonus})
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyPaid)

	_, err = f.svc.UpdatePayroll(ctx, payroll.UpdatePayrollRequest{ID: "missing", Bonus: &bonus})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestGetAndDeletePayroll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)

	got, err := f.svc.GetPayroll(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PayslipPath)

	mine, err := f.svc.GetPayrollsByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.GetPayrollsByMonth(ctx, "2024-13")
	assert.Error(t, err)

	require.NoError(t, f.svc.DeletePayroll(ctx, created.ID, "user-hr"))
	assert.Equal(t, []string{*got.PayslipPath}, f.payslips.removed)
	assert.Empty(t, f.payrolls.rows)
	assert.Equal(t, audit.ActionDelete, f.audit.actions[len(f.audit.actions)-1])
	assert.Equal(t, "user-hr", f.audit.actors[len(f.audit.actors)-1])

	_, err = f.svc.GetPayroll(ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)

	err = f.svc.DeletePayroll(ctx, created.ID, "user-hr")
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestDeletePayroll_FailedDeleteKeepsDocument(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)

	boom := errors.New("connection reset")
	f.payrolls.deleteErr = boom
	err = f.svc.DeletePayroll(ctx, created.ID, "user-hr")
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, f.payslips.removed)
	assert.Contains(t, f.payrolls.rows, created.ID)
	assert.NotContains(t, f.audit.actions, audit.ActionDelete)
}

func TestDeletePayroll_WithoutPayslip(t *testing.T) {
	f := newFixture()
	f.payslips.generateErr = errors.New("renderer down")
	ctx := context.Background()

	created, err := f.svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{EmployeeID: "emp-1", Month: "2024-01"})
	require.NoError(t, err)
	require.Nil(t, created.PayslipPath)

	require.NoError(t, f.svc.DeletePayroll(ctx, created.ID, "user-hr"))
	assert.Empty(t, f.payslips.removed)
	assert.Empty(t, f.payrolls.rows)
}
