package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new row. A second row for the same employee and date
	// returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when no row exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// Upsert sets the status for (employee, date), creating the row if needed.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByEmployeeAndRange returns rows with from <= date <= to, ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
