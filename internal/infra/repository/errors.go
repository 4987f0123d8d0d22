package repository

import (
	"errors"

	"cargo-backoffice/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapQueryErr maps pgx-level failures onto repository error kinds so
// usecases can branch without importing the driver.
func wrapQueryErr(msg string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	case isPgErrCode(err, pgUniqueViolation):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case isPgErrCode(err, pgForeignKeyViolation):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
