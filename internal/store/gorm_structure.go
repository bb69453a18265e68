package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
	"gorm.io/gorm/clause"
)

const (
	entityStructure        = "structure"
	entityProteinStructure = "protein_structure"
)

func (g *GormStore) CreateStructure(ctx context.Context, s *model.Structure) error {
	err := g.write(ctx).Create(s).Error
	return translate(err, opWrite, entityStructure, "structure_id", s.StructureID)
}

func (g *GormStore) GetStructure(ctx context.Context, id string) (*model.Structure, error) {
	var s model.Structure
	err := g.read(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, translate(err, opWrite, entityStructure, "id", id)
	}
	return &s, nil
}

func (g *GormStore) ListStructures(ctx context.Context, accession string) ([]*model.Structure, error) {
	var structures []*model.Structure
	db := g.db.WithContext(ctx)
	if accession != "" {
		db = db.Where("structure_id = ?", accession)
	}
	err := db.Order("structure_id").Order("id").Find(&structures).Error
	return structures, translate(err, opWrite, entityStructure, "", "")
}

func (g *GormStore) DeleteStructure(ctx context.Context, id string) error {
	return g.deleteByID(ctx, &model.Structure{}, entityStructure, id)
}

func (g *GormStore) AttachStructure(ctx context.Context, proteinID, structureID string) error {
	link := &model.ProteinStructure{ProteinID: proteinID, StructureID: structureID}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
	return translate(err, opWrite, entityProteinStructure, "", "")
}

func (g *GormStore) DetachStructure(ctx context.Context, proteinID, structureID string) error {
	err := g.db.WithContext(ctx).
		Where("protein_id = ? AND structure_id = ?", proteinID, structureID).
		Delete(&model.ProteinStructure{}).Error
	return translate(err, opDelete, entityProteinStructure, "", "")
}

func (g *GormStore) ListProteinStructures(ctx context.Context, proteinID string) ([]*model.Structure, error) {
	var structures []*model.Structure
	err := g.db.WithContext(ctx).
		Select("structure.*").
		Joins("JOIN protein_structure ps ON ps.structure_id = structure.id").
		Where("ps.protein_id = ?", proteinID).
		Order("structure.structure_id").
		Find(&structures).Error
	return structures, translate(err, opWrite, entityProteinStructure, "protein_id", proteinID)
}

func (g *GormStore) ListStructureProteins(ctx context.Context, structureID string) ([]*model.Protein, error) {
	var proteins []*model.Protein
	err := g.db.WithContext(ctx).
		Select("protein.*").
		Joins("JOIN protein_structure ps ON ps.protein_id = protein.id").
		Where("ps.structure_id = ?", structureID).
		Order("protein.external_id").
		Find(&proteins).Error
	return proteins, translate(err, opWrite, entityProteinStructure, "structure_id", structureID)
}
