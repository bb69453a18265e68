package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emrgen/bioref/internal/store"
)

// column limits of the persisted schema
const (
	maxGoID             = 20
	maxBinaryName       = 30
	maxShortName        = 20
	maxStructureID      = 5
	maxExternalID       = 15
	maxDisplayName      = 30
	maxSequence         = 3000
	maxUniprotEntryName = 20
	maxProteinName      = 50
	maxUniprotID        = 20
)

// required trims s and checks it is non blank and at most max runes long.
// max <= 0 disables the length check.
func required(entity, field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(entity, field, s, "is required")
	}
	return s, checkLength(entity, field, s, max)
}

// optional checks the length of an optional value, blank values are allowed.
func optional(entity, field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	return s, checkLength(entity, field, s, max)
}

func checkLength(entity, field, s string, max int) error {
	if max > 0 && utf8.RuneCountInString(s) > max {
		return invalid(entity, field, truncate(s), fmt.Sprintf("exceeds %d characters", max))
	}
	return nil
}

// sequence validates an optional residue sequence. Blank sequences are stored as NULL.
func sequence(entity string, seq *string) (*string, error) {
	if seq == nil {
		return nil, nil
	}
	s := strings.Join(strings.Fields(*seq), "")
	if s == "" {
		return nil, nil
	}
	if err := checkLength(entity, "sequence", s, maxSequence); err != nil {
		return nil, err
	}
	return &s, nil
}

func invalid(entity, field, value, reason string) error {
	return &store.Error{
		Kind:   ErrInvalidArgument,
		Entity: entity,
		Field:  field,
		Value:  value,
		Err:    fmt.Errorf("%s %s", field, reason),
	}
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= 32 {
		return s
	}
	return string([]rune(s)[:32]) + "..."
}

// refNotFound renames a missing row error after the field that referenced it.
func refNotFound(err error, entity, field, id string) error {
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return &store.Error{Kind: ErrNotFound, Entity: entity, Field: field, Value: id, Err: err}
}
