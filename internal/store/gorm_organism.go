package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
)

const entityOrganism = "organism"

func (g *GormStore) CreateOrganism(ctx context.Context, org *model.Organism) error {
	err := g.write(ctx).Create(org).Error
	return translate(err, opWrite, entityOrganism, "binary_name", org.BinaryName)
}

func (g *GormStore) GetOrganism(ctx context.Context, id string) (*model.Organism, error) {
	var org model.Organism
	err := g.read(ctx).Where("id = ?", id).First(&org).Error
	if err != nil {
		return nil, translate(err, opWrite, entityOrganism, "id", id)
	}
	return &org, nil
}

func (g *GormStore) GetOrganismByBinaryName(ctx context.Context, name string) (*model.Organism, error) {
	var org model.Organism
	err := g.read(ctx).Where("binary_name = ?", name).First(&org).Error
	if err != nil {
		return nil, translate(err, opWrite, entityOrganism, "binary_name", name)
	}
	return &org, nil
}

func (g *GormStore) ListOrganisms(ctx context.Context) ([]*model.Organism, error) {
	var orgs []*model.Organism
	err := g.db.WithContext(ctx).Order("binary_name").Find(&orgs).Error
	return orgs, translate(err, opWrite, entityOrganism, "", "")
}

func (g *GormStore) UpdateOrganism(ctx context.Context, org *model.Organism) error {
	return g.update(ctx, org, entityOrganism, org.ID, "binary_name", org.BinaryName)
}

func (g *GormStore) DeleteOrganism(ctx context.Context, id string) error {
	return g.deleteByID(ctx, &model.Organism{}, entityOrganism, id)
}

func (g *GormStore) CountOrganismReferences(ctx context.Context, id string) (int64, error) {
	var genes, proteins int64
	if err := g.db.WithContext(ctx).Model(&model.Gene{}).Where("organism_id = ?", id).Count(&genes).Error; err != nil {
		return 0, translate(err, opWrite, "gene", "organism_id", id)
	}
	if err := g.db.WithContext(ctx).Model(&model.Protein{}).Where("organism_id = ?", id).Count(&proteins).Error; err != nil {
		return 0, translate(err, opWrite, "protein", "organism_id", id)
	}
	return genes + proteins, nil
}
