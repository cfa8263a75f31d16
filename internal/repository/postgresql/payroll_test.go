package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollRepository_ExistsForMonth(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollRepository(db)
	month := time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM payrolls WHERE employee_id = $1 AND payroll_month = $2)")).
		WithArgs("emp-1", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForMonth(context.Background(), "emp-1", month)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_CreateDuplicateMonth(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollRepository(db)

	args := make([]interface{}, 22)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payrolls")).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uk_payrolls_employee_month"})

	_, err := repo.Create(context.Background(), payroll.Payroll{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM payrolls WHERE id = $1")).
		WithArgs("p-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p-404"), payroll.ErrPayrollNotFound)
}
