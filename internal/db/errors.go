package db

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows means the requested lookup does not exist. Both stores return it
// in place of their driver's own sentinel.
var ErrNoRows = errors.New("lookup not found")

// IsNoRows reports whether err is, or wraps, a missing-row error from either
// driver or from this package.
func IsNoRows(err error) bool {
	return err != nil && (errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows))
}

// MapNoRows replaces a driver missing-row error with ErrNoRows and passes any
// other error through untouched.
func MapNoRows(err error) error {
	if IsNoRows(err) {
		return ErrNoRows
	}
	return err
}
