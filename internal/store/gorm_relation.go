package store

import (
	"context"
	"fmt"

	"github.com/emrgen/bioref/internal/model"
	"gorm.io/gorm/clause"
)

func (g *GormStore) AddAnnotation(ctx context.Context, v model.Variant, slot model.Slot, entityID, termID string) error {
	table := model.AnnotationTable(v, slot)
	edge := &model.AnnotationEdge{EntityID: entityID, TermID: termID}
	err := g.db.WithContext(ctx).Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	return translate(err, opWrite, table, "", "")
}

func (g *GormStore) RemoveAnnotation(ctx context.Context, v model.Variant, slot model.Slot, entityID, termID string) error {
	table := model.AnnotationTable(v, slot)
	err := g.db.WithContext(ctx).Table(table).
		Where("entity_id = ? AND term_id = ?", entityID, termID).
		Delete(&model.AnnotationEdge{}).Error
	return translate(err, opDelete, table, "", "")
}

func (g *GormStore) ListAnnotations(ctx context.Context, v model.Variant, slot model.Slot, entityID string) ([]*model.OntologyTerm, error) {
	table := model.AnnotationTable(v, slot)
	var terms []*model.OntologyTerm
	err := g.db.WithContext(ctx).
		Select("ontology_term.*").
		Joins(fmt.Sprintf("JOIN %s a ON a.term_id = ontology_term.id", table)).
		Where("a.entity_id = ?", entityID).
		Order("ontology_term.go_id").
		Find(&terms).Error
	return terms, translate(err, opWrite, table, "entity_id", entityID)
}

func (g *GormStore) AddEdge(ctx context.Context, v model.Variant, r model.Relation, a, b string) error {
	table := model.RelationTable(v, r)
	edge := model.NewEntityEdge(a, b)
	err := g.db.WithContext(ctx).Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	return translate(err, opWrite, table, "", "")
}

func (g *GormStore) RemoveEdge(ctx context.Context, v model.Variant, r model.Relation, a, b string) error {
	table := model.RelationTable(v, r)
	edge := model.NewEntityEdge(a, b)
	err := g.db.WithContext(ctx).Table(table).
		Where("entity_id_a = ? AND entity_id_b = ?", edge.EntityIDA, edge.EntityIDB).
		Delete(&model.EntityEdge{}).Error
	return translate(err, opDelete, table, "", "")
}

func (g *GormStore) ListEdges(ctx context.Context, v model.Variant, r model.Relation, id string) ([]string, error) {
	table := model.RelationTable(v, r)
	var edges []model.EntityEdge
	err := g.db.WithContext(ctx).Table(table).
		Where("entity_id_a = ? OR entity_id_b = ?", id, id).
		Order("entity_id_a").Order("entity_id_b").
		Find(&edges).Error
	if err != nil {
		return nil, translate(err, opWrite, table, "", "")
	}

	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.Other(id))
	}
	return ids, nil
}

func (g *GormStore) DeleteEntityEdges(ctx context.Context, v model.Variant, id string) error {
	db := g.db.WithContext(ctx)
	for _, s := range model.Slots() {
		table := model.AnnotationTable(v, s)
		if err := db.Table(table).Where("entity_id = ?", id).Delete(&model.AnnotationEdge{}).Error; err != nil {
			return translate(err, opDelete, table, "entity_id", id)
		}
	}

	for _, r := range model.Relations() {
		table := model.RelationTable(v, r)
		err := db.Table(table).Where("entity_id_a = ? OR entity_id_b = ?", id, id).Delete(&model.EntityEdge{}).Error
		if err != nil {
			return translate(err, opDelete, table, "", id)
		}
	}

	if v == model.VariantProtein {
		if err := db.Where("protein_id = ?", id).Delete(&model.ProteinStructure{}).Error; err != nil {
			return translate(err, opDelete, entityProteinStructure, "protein_id", id)
		}
	}

	return nil
}

func (g *GormStore) ListMisplacedAnnotations(ctx context.Context) ([]*MisplacedAnnotation, error) {
	var misplaced []*MisplacedAnnotation
	for _, v := range model.Variants() {
		for _, s := range model.Slots() {
			table := model.AnnotationTable(v, s)
			var rows []*MisplacedAnnotation
			err := g.db.WithContext(ctx).Table(table+" a").
				Select("a.entity_id AS entity_id, a.term_id AS term_id").
				Joins("JOIN ontology_term t ON t.id = a.term_id").
				Where("t.category IS NULL OR t.category <> ?", s.Category()).
				Scan(&rows).Error
			if err != nil {
				return nil, translate(err, opWrite, table, "", "")
			}
			for _, row := range rows {
				row.Table = table
			}
			misplaced = append(misplaced, rows...)
		}
	}
	return misplaced, nil
}
