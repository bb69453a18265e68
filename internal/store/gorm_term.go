package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
)

const entityOntologyTerm = "ontology_term"

func (g *GormStore) CreateOntologyTerm(ctx context.Context, term *model.OntologyTerm) error {
	err := g.write(ctx).Create(term).Error
	return translate(err, opWrite, entityOntologyTerm, "go_id", term.GoID)
}

func (g *GormStore) GetOntologyTerm(ctx context.Context, id string) (*model.OntologyTerm, error) {
	var term model.OntologyTerm
	err := g.read(ctx).Where("id = ?", id).First(&term).Error
	if err != nil {
		return nil, translate(err, opWrite, entityOntologyTerm, "id", id)
	}
	return &term, nil
}

func (g *GormStore) GetOntologyTermByGoID(ctx context.Context, goID string) (*model.OntologyTerm, error) {
	var term model.OntologyTerm
	err := g.read(ctx).Where("go_id = ?", goID).First(&term).Error
	if err != nil {
		return nil, translate(err, opWrite, entityOntologyTerm, "go_id", goID)
	}
	return &term, nil
}

func (g *GormStore) ListOntologyTerms(ctx context.Context, category *model.Category) ([]*model.OntologyTerm, error) {
	var terms []*model.OntologyTerm
	db := g.db.WithContext(ctx)
	if category != nil {
		db = db.Where("category = ?", *category)
	}
	err := db.Order("go_id").Find(&terms).Error
	return terms, translate(err, opWrite, entityOntologyTerm, "", "")
}

func (g *GormStore) UpdateOntologyTerm(ctx context.Context, term *model.OntologyTerm) error {
	return g.update(ctx, term, entityOntologyTerm, term.ID, "go_id", term.GoID)
}

func (g *GormStore) DeleteOntologyTerm(ctx context.Context, id string) error {
	return g.deleteByID(ctx, &model.OntologyTerm{}, entityOntologyTerm, id)
}

func (g *GormStore) CountTermAnnotations(ctx context.Context, termID string) (int64, error) {
	var total int64
	for _, v := range model.Variants() {
		for _, s := range model.Slots() {
			var count int64
			err := g.db.WithContext(ctx).Table(model.AnnotationTable(v, s)).Where("term_id = ?", termID).Count(&count).Error
			if err != nil {
				return 0, translate(err, opWrite, model.AnnotationTable(v, s), "term_id", termID)
			}
			total += count
		}
	}
	return total, nil
}
