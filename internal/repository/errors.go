package repository

import (
	"errors"

	"fitnessfinder/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres error code for a unique index violation.
const pgUniqueViolation = "23505"

// wrapWriteError maps driver errors from an insert or update to the
// application taxonomy. Unique-index violations become conflicts: the
// indexes on (profile, session_id) and on profile emails back the same
// invariants the services check, so a racing writer that slips past the
// service-level check still surfaces as a conflict, not a 500.
func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.NewConflictError("A record with the same key already exists")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError("A record with the same key already exists")
	}
	return models.NewInternalError(err)
}
