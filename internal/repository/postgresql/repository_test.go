package postgresql

import (
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &database.DB{Pool: mock}, mock
}
