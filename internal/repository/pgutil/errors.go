// Package pgutil holds helpers shared by the Postgres repositories.
package pgutil

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"clinic-content-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeInvalidTextSyntax   = "22P02"
	codeStringDataRightTrun = "22001"
)

// MapError translates driver errors into domain errors. Malformed ids are
// reported as not found since no row can match them.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.ErrAlreadyExists
		case codeInvalidTextSyntax:
			return domain.ErrNotFound
		case codeStringDataRightTrun:
			return domain.NewValidationError("field value too long")
		}
	}
	return err
}

// ConstraintName returns the violated constraint for unique violations.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}
