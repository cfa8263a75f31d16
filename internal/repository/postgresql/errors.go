package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

// pgErrorCode returns the SQLSTATE of err and the violated constraint name.
func pgErrorCode(err error) (code string, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgForeignKeyViolation
}

func isExclusionViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgExclusionViolation
}

func isCheckViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgCheckViolation
}
