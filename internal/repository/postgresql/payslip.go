package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) Upsert(ctx context.Context, slip payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (id, payroll_id, file_path, generated_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (payroll_id) DO UPDATE SET
			file_path = EXCLUDED.file_path,
			generated_date = EXCLUDED.generated_date,
			updated_at = NOW()
		RETURNING id, payroll_id, file_path, generated_date, created_at, updated_at
	`
	var s payslip.Payslip
	err := q.QueryRow(ctx, query, newID(), slip.PayrollID, slip.FilePath, slip.GeneratedDate).Scan(
		&s.ID, &s.PayrollID, &s.FilePath, &s.GeneratedDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payslip.Payslip{}, payroll.ErrPayrollNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to save payslip: %w", err)
	}
	return s, nil
}

func (r *payslipRepository) GetByPayrollID(ctx context.Context, payrollID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, file_path, generated_date, created_at, updated_at
		FROM payslips
		WHERE payroll_id = $1
	`
	var s payslip.Payslip
	err := q.QueryRow(ctx, query, payrollID).Scan(
		&s.ID, &s.PayrollID, &s.FilePath, &s.GeneratedDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return s, nil
}
