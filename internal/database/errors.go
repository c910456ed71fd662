package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when the requested record
// does not exist. Callers decide whether absence is an error.
var ErrNotFound = errors.New("record not found")

// ConstraintError is a store-level integrity rejection with an
// identified constraint. Repositories translate it into their own
// domain errors; it never reaches a transport boundary raw.
type ConstraintError struct {
	Constraint string // e.g. "idx_users_username" or "users.username"
	Err        error
}

func (e *ConstraintError) Error() string {
	return "constraint violated: " + e.Constraint
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// On reports whether the violated constraint covers the given table
// column. Both drivers expose the table and column names inside the
// constraint identifier, just formatted differently.
func (e *ConstraintError) On(table, column string) bool {
	return strings.Contains(e.Constraint, table) && strings.Contains(e.Constraint, column)
}

// ClassifyError maps driver errors onto the package's typed errors:
// gorm.ErrRecordNotFound becomes ErrNotFound, and integrity violations
// from either driver become a *ConstraintError carrying the constraint
// identifier. Anything else passes through unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return &ConstraintError{Constraint: pgErr.ConstraintName, Err: err}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &ConstraintError{Constraint: sqliteConstraint(sqliteErr), Err: err}
	}

	return err
}

// sqliteConstraint extracts the "table.column" part of a sqlite
// constraint failure. The driver reports the code structurally but
// only names the constraint in the message, e.g.
// "UNIQUE constraint failed: users.username".
func sqliteConstraint(err sqlite3.Error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
