package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	rows map[string]attendance.Attendance
}

func key(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	k := key(a.EmployeeID, a.Date)
	if _, ok := f.rows[k]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	a.ID = "att-" + k
	f.rows[k] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a, ok := f.rows[key(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	f.rows[key(a.EmployeeID, a.Date)] = a
	return nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	k := key(a.EmployeeID, a.Date)
	if existing, ok := f.rows[k]; ok {
		existing.Status = a.Status
		f.rows[k] = existing
		return existing, nil
	}
	a.ID = "att-" + k
	f.rows[k] = a
	return a, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if a, ok := f.rows[key(employeeID, d)]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if id != "emp-1" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func newTestService() (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{rows: map[string]attendance.Attendance{}}
	svc := NewAttendanceService(repo, fakeEmployeeRepo{}).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCheckInCheckOut(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	in, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T09:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", in.Date)
	assert.Equal(t, string(attendance.StatusPresent), in.Status)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T10:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	out, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T17:30:00Z"})
	require.NoError(t, err)
	assert.True(t, out.WorkingHours.Equal(decimal.RequireFromString("8.5")), "hours = %s", out.WorkingHours)
	require.NotNil(t, repo.rows["emp-1/2024-03-15"].LogoutTime)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T18:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckIn_UsesClockWhenTimestampMissing(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.NotNil(t, resp.LoginTime)
	assert.Equal(t, 12, resp.LoginTime.Hour())
}

func TestCheckIn_OverwritesMarkedStatus(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "emp-1", Date: "2024-03-15", Status: "Absent"})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T09:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, repo.rows["emp-1/2024-03-15"].Status)
}

func TestCheckOut_Errors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T17:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "emp-1", Date: "2024-03-15", Status: "Holiday"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1", Timestamp: "2024-03-15T17:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1", Timestamp: "2024-03-16T09:00:00Z"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1", Timestamp: "2024-03-16T08:00:00Z"})
	assert.ErrorIs(t, err, attendance.ErrInvalidCheckOut)
}

func TestMarkAttendance_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "emp-1", Date: "2024-03-15", Status: "Sick"})
	assert.Error(t, err)

	_, err = svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "emp-9", Date: "2024-03-15", Status: "Absent"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListAttendance_DefaultsToCurrentMonth(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, ts := range []string{"2024-02-28T09:00:00Z", "2024-03-01T09:00:00Z", "2024-03-15T09:00:00Z"} {
		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1", Timestamp: ts})
		require.NoError(t, err)
	}

	list, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-01", list[0].Date)

	_, err = svc.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeID: "emp-1", From: "2024-03-10", To: "2024-03-01"})
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}
