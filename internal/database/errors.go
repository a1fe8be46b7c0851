package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrExclusion    = errors.New("exclusion constraint violation")
	ErrCheck        = errors.New("check constraint violation")
	ErrTimeout      = errors.New("query timeout")
)

// Error keeps the driver error behind one of the sentinels above.
type Error struct {
	Sentinel error
	Cause    error
}

func (e *Error) Error() string        { return fmt.Sprintf("%s: %v", e.Sentinel, e.Cause) }
func (e *Error) Is(target error) bool { return e.Sentinel == target }
func (e *Error) Unwrap() error        { return e.Cause }

// Translate maps gorm and postgres errors onto the package sentinels so
// handlers never inspect driver types.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var dbe *Error
	if errors.As(err, &dbe) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Sentinel: ErrNotFound, Cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Sentinel: ErrDuplicateKey, Cause: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Sentinel: ErrForeignKey, Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &Error{Sentinel: ErrTimeout, Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &Error{Sentinel: ErrDuplicateKey, Cause: err}
		case "23503":
			return &Error{Sentinel: ErrForeignKey, Cause: err}
		case "23P01":
			return &Error{Sentinel: ErrExclusion, Cause: err}
		case "23514":
			return &Error{Sentinel: ErrCheck, Cause: err}
		case "57014":
			return &Error{Sentinel: ErrTimeout, Cause: err}
		}
	}

	return err
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
