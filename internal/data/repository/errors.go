package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means an insert or update collided with an existing
	// username, email or phone number. The write is rejected, never merged.
	ErrDuplicate = errors.New("duplicate value for unique field")
	// ErrForeignKey means the write referenced a non-existent user or role.
	ErrForeignKey = errors.New("referenced record does not exist")
	// ErrRequiredField means a non-nullable column was left empty.
	ErrRequiredField = errors.New("required field missing")
	// ErrNotConsumable means a consume operation found the record already
	// verified/used, expired, or missing. Exactly one consumer can win.
	ErrNotConsumable = errors.New("record already consumed, expired or missing")
)

// translateError maps Postgres constraint failures onto sentinel errors so
// callers can branch with errors.Is instead of inspecting SQLSTATE codes.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicate
		case "23503": // foreign_key_violation
			return ErrForeignKey
		case "23502": // not_null_violation
			return ErrRequiredField
		}
	}
	return err
}
