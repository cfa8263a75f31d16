package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("already checked in for this date")
	ErrNotCheckedIn      = errors.New("not checked in for this date")
	ErrAlreadyCheckedOut = errors.New("already checked out for this date")
	ErrInvalidCheckOut   = errors.New("check-out time cannot be before check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateRange   = errors.New("from date must not be after to date")
)
