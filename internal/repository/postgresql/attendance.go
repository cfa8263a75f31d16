package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, login_time, logout_time, working_hours, status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.LoginTime, &a.LogoutTime,
		&a.WorkingHours, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, date, login_time, logout_time, working_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newID(), a.EmployeeID, a.Date, a.LoginTime, a.LogoutTime, a.WorkingHours, a.Status,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		case isForeignKeyViolation(err):
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET login_time = $2, logout_time = $3, working_hours = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, a.ID, a.LoginTime, a.LogoutTime, a.WorkingHours, a.Status)
	if err != nil {
		if isCheckViolation(err) {
			return attendance.ErrInvalidCheckOut
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Upsert keeps recorded login/logout times when only the status changes.
func (r *attendanceRepository) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, employee_id, date, login_time, logout_time, working_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			login_time = COALESCE(EXCLUDED.login_time, attendance.login_time),
			logout_time = COALESCE(EXCLUDED.logout_time, attendance.logout_time),
			working_hours = CASE WHEN EXCLUDED.logout_time IS NULL THEN attendance.working_hours ELSE EXCLUDED.working_hours END,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		newID(), a.EmployeeID, a.Date, a.LoginTime, a.LogoutTime, a.WorkingHours, a.Status,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return saved, nil
}

func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
