package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type balanceKey struct {
	employeeID string
	leaveType  leave.LeaveType
	year       int
}

type fakeBalanceRepo struct {
	rows map[balanceKey]leave.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: map[balanceKey]leave.LeaveBalance{}}
}

func (f *fakeBalanceRepo) put(b leave.LeaveBalance) {
	f.rows[balanceKey{b.EmployeeID, b.LeaveType, b.Year}] = b
}

func (f *fakeBalanceRepo) InsertIfAbsent(_ context.Context, b leave.LeaveBalance) (bool, error) {
	k := balanceKey{b.EmployeeID, b.LeaveType, b.Year}
	if _, ok := f.rows[k]; ok {
		return false, nil
	}
	f.rows[k] = b
	return true, nil
}

func (f *fakeBalanceRepo) Get(_ context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, error) {
	b, ok := f.rows[balanceKey{employeeID, leaveType, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	return b, nil
}

// consume mirrors the AddUsage UPDATE: used grows, remaining is re-derived and may go negative.
func consume(b leave.LeaveBalance, days decimal.Decimal) leave.LeaveBalance {
	b.UsedDays = b.UsedDays.Add(days)
	b.RemainingDays = b.AllocatedDays.Sub(b.UsedDays)
	return b
}

func (f *fakeBalanceRepo) AddUsage(_ context.Context, employeeID string, leaveType leave.LeaveType, year int, days decimal.Decimal) (leave.LeaveBalance, error) {
	k := balanceKey{employeeID, leaveType, year}
	b, ok := f.rows[k]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
	}
	b = consume(b, days)
	f.rows[k] = b
	return b, nil
}

func (f *fakeBalanceRepo) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, t := range leave.TrackedLeaveTypes {
		if b, ok := f.rows[balanceKey{employeeID, t, year}]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	rows   map[string]leave.LeaveRequest
	nextID int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{rows: map[string]leave.LeaveRequest{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	f.rows[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.rows[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, req leave.LeaveRequest) error {
	f.rows[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) ListApprovedInRange(_ context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	probe := leave.LeaveRequest{FromDate: from, ToDate: to}
	var out []leave.LeaveRequest
	for _, r := range f.rows {
		if r.EmployeeID == employeeID && r.Status == leave.LeaveRequestStatusApproved && r.Overlaps(probe) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	out := make([]leave.LeaveRequest, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	rows []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListAll(_ context.Context) ([]employee.Employee, error) {
	return f.rows, nil
}

type fakeAudit struct {
	audit.AuditService
	actions []audit.Action
}

func (f *fakeAudit) Log(_ context.Context, _ string, action audit.Action, _, _ string, _, _ any) error {
	f.actions = append(f.actions, action)
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
