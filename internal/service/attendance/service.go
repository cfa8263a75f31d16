package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	now func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, employeeRepository employee.EmployeeRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		now:                  time.Now,
	}
}

// eventTime returns the parsed timestamp or the current time, in UTC.
func (a *AttendanceServiceImpl) eventTime(timestamp string) time.Time {
	if timestamp != "" {
		if t, err := time.Parse(time.RFC3339Nano, timestamp); err == nil {
			return t.UTC()
		}
	}
	return a.now().UTC()
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := a.eventTime(req.Timestamp)
	date := truncateToDate(at)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	switch {
	case err == nil && existing.LoginTime != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	case err == nil:
		// a status marked by HR without a login is overwritten by the check-in
		existing.LoginTime = &at
		existing.Status = attendance.StatusPresent
		if err := a.AttendanceRepository.Update(ctx, existing); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		slog.Info("Employee checked in", "employee_id", req.EmployeeID, "date", date.Format("2006-01-02"))
		return mapAttendanceToResponse(existing), nil
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:   req.EmployeeID,
		Date:         date,
		LoginTime:    &at,
		WorkingHours: decimal.Zero,
		Status:       attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee checked in", "employee_id", req.EmployeeID, "date", date.Format("2006-01-02"))
	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := a.eventTime(req.Timestamp)
	date := truncateToDate(at)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record.LoginTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.LogoutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if at.Before(*record.LoginTime) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidCheckOut
	}

	record.LogoutTime = &at
	record.WorkingHours = attendance.WorkingHoursBetween(*record.LoginTime, at)
	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("Employee checked out",
		"employee_id", req.EmployeeID,
		"date", date.Format("2006-01-02"),
		"working_hours", record.WorkingHours.String(),
	)
	return mapAttendanceToResponse(record), nil
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	record, err := a.AttendanceRepository.Upsert(ctx, attendance.Attendance{
		EmployeeID:   req.EmployeeID,
		Date:         date,
		WorkingHours: decimal.Zero,
		Status:       attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return mapAttendanceToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	from, to, err := filter.Range(a.now().UTC())
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeAndRange(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, mapAttendanceToResponse(r))
	}
	return resp, nil
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		Date:         att.Date.Format("2006-01-02"),
		LoginTime:    att.LoginTime,
		LogoutTime:   att.LogoutTime,
		WorkingHours: att.WorkingHours,
		Status:       string(att.Status),
	}
}
