package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// wrapErr maps pgx errors onto the repository contract: missing rows become
// ErrNotFound, serialization failures and deadlocks become
// domain.ErrTransientConflict. Everything else is returned as is.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrTransientConflict, pgErr.Message)
		}
	}
	return err
}
