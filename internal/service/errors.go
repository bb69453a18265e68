package service

import (
	"errors"

	"github.com/emrgen/bioref/internal/store"
)

var (
	// ErrDuplicateKey is returned when a unique key is already taken.
	ErrDuplicateKey = store.ErrDuplicateKey
	// ErrNotFound is returned when a referenced id does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrConflict is returned when live references block a delete or update.
	ErrConflict = store.ErrConflict
	// ErrUnavailable is returned when the store cannot be reached.
	ErrUnavailable = store.ErrUnavailable
	// ErrCategoryMismatch is returned when a term is placed in a slot of another category.
	ErrCategoryMismatch = errors.New("category mismatch")
	// ErrTypeMismatch is returned when an edge would join a gene and a protein.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrSelfLoop is returned when an edge would join an entity to itself.
	ErrSelfLoop = errors.New("self loop")
	// ErrInvalidArgument is returned when a field fails validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsRetryable reports whether the operation may succeed when retried unchanged.
func IsRetryable(err error) bool {
	return store.IsRetryable(err)
}

func fieldError(kind error, entity, field, value string) error {
	return store.NewError(kind, entity, field, value)
}
