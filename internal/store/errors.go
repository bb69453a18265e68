package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when a unique key is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a delete or update is blocked by live references.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable is returned when the database cannot be reached. It is retryable.
	ErrUnavailable = errors.New("store unavailable")
)

// Error names the entity and field an error kind was raised for.
type Error struct {
	Kind   error
	Entity string
	Field  string
	Value  string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		b.WriteString(": ")
		b.WriteString(e.Entity)
		if e.Field != "" {
			b.WriteString(".")
			b.WriteString(e.Field)
		}
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds a field error of the given kind.
func NewError(kind error, entity, field, value string) *Error {
	return &Error{Kind: kind, Entity: entity, Field: field, Value: value}
}

// IsRetryable reports whether err is a transport failure the caller may retry.
// Integrity violations never are.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// op tells translate what a foreign key violation means for the statement
type op int

const (
	opWrite op = iota
	opDelete
)

// translate maps driver and gorm errors onto the error kinds of this package.
// Errors that already carry a kind are returned as they are.
func translate(err error, o op, entity, field, value string) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	kind := classify(err)
	if kind == nil {
		return err
	}
	if kind == errForeignKey {
		if o == opDelete {
			kind = ErrConflict
		} else {
			kind = ErrNotFound
		}
		// the violated key is not the one the caller was looking up
		field, value = "", ""
	}
	if kind == ErrUnavailable {
		return &Error{Kind: kind, Err: err}
	}

	return &Error{Kind: kind, Entity: entity, Field: field, Value: value, Err: err}
}

var errForeignKey = errors.New("foreign key violation")

func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return ErrDuplicateKey
		case pgErr.Code == "23503":
			return errForeignKey
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P0"),
			pgErr.Code == "40001", pgErr.Code == "40P01":
			return ErrUnavailable
		}
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch {
		case liteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return ErrDuplicateKey
		case liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
			return errForeignKey
		case liteErr.Code == sqlite3.ErrBusy, liteErr.Code == sqlite3.ErrLocked,
			liteErr.Code == sqlite3.ErrCantOpen, liteErr.Code == sqlite3.ErrIoErr:
			return ErrUnavailable
		}
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, net.ErrClosed),
		pgconn.Timeout(err),
		errors.As(err, &netErr):
		return ErrUnavailable
	}

	return nil
}
