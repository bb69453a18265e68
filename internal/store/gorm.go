package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db   *gorm.DB
	lock bool
}

// read returns a session for queries, locking the selected rows when the
// store was obtained through ForUpdate.
func (g *GormStore) read(ctx context.Context) *gorm.DB {
	db := g.db.WithContext(ctx)
	if g.lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (g *GormStore) write(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).Omit(clause.Associations)
}

func (g *GormStore) ForUpdate() Store {
	return &GormStore{db: g.db, lock: true}
}

func (g *GormStore) Migrate() error {
	return translate(model.Migrate(g.db), opWrite, "", "", "")
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
	return translate(err, opWrite, "", "", "")
}

// deleteByID removes one row and reports NotFound when nothing matched.
func (g *GormStore) deleteByID(ctx context.Context, value any, entity, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(value)
	if res.Error != nil {
		return translate(res.Error, opDelete, entity, "id", id)
	}
	if res.RowsAffected == 0 {
		return NewError(ErrNotFound, entity, "id", id)
	}
	return nil
}

// update saves every column of a row that is known to exist.
func (g *GormStore) update(ctx context.Context, value any, entity, id, field, key string) error {
	res := g.write(ctx).Model(value).Select("*").Omit("created_at").Updates(value)
	if res.Error != nil {
		return translate(res.Error, opWrite, entity, field, key)
	}
	if res.RowsAffected == 0 {
		return NewError(ErrNotFound, entity, "id", id)
	}
	return nil
}
