package cache

import (
	"context"
	"time"
)

// Cache keeps read mostly lookups out of the database.
// A miss is reported with ok == false and no error.
type Cache interface {
	Get(ctx context.Context, key string, v any) (ok bool, err error)
	Set(ctx context.Context, key string, v any) error
	SetMany(ctx context.Context, entries map[string]any) error
	Delete(ctx context.Context, keys ...string) error
}

const DefaultTTL = time.Hour

func TermKey(goID string) string {
	return "ontology_term:go_id:" + goID
}

func OrganismKey(binaryName string) string {
	return "organism:binary_name:" + binaryName
}

var _ Cache = Nop{}

// Nop never stores anything.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Get(ctx context.Context, key string, v any) (bool, error) {
	return false, nil
}

func (Nop) Set(ctx context.Context, key string, v any) error {
	return nil
}

func (Nop) SetMany(ctx context.Context, entries map[string]any) error {
	return nil
}

func (Nop) Delete(ctx context.Context, keys ...string) error {
	return nil
}
