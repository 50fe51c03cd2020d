package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

// mapPgError lifts driver errors the orchestrators branch on into the uniform
// error shape; everything else passes through untouched.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errorx.NewDuplicateEntry().WithCause(err)
	}

	return err
}
