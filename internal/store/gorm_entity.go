package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
)

func (g *GormStore) CreateGene(ctx context.Context, gene *model.Gene) error {
	err := g.write(ctx).Create(gene).Error
	return translate(err, opWrite, string(model.VariantGene), "external_id", gene.ExternalID)
}

func (g *GormStore) GetGene(ctx context.Context, id string) (*model.Gene, error) {
	var gene model.Gene
	err := g.read(ctx).Preload("Organism").Where("id = ?", id).First(&gene).Error
	if err != nil {
		return nil, translate(err, opWrite, string(model.VariantGene), "id", id)
	}
	return &gene, nil
}

func (g *GormStore) GetGeneByExternalID(ctx context.Context, externalID string) (*model.Gene, error) {
	var gene model.Gene
	err := g.read(ctx).Preload("Organism").Where("external_id = ?", externalID).First(&gene).Error
	if err != nil {
		return nil, translate(err, opWrite, string(model.VariantGene), "external_id", externalID)
	}
	return &gene, nil
}

func (g *GormStore) ListGenes(ctx context.Context, organismID string) ([]*model.Gene, error) {
	var genes []*model.Gene
	db := g.db.WithContext(ctx).Preload("Organism")
	if organismID != "" {
		db = db.Where("organism_id = ?", organismID)
	}
	err := db.Order("external_id").Find(&genes).Error
	return genes, translate(err, opWrite, string(model.VariantGene), "", "")
}

func (g *GormStore) UpdateGene(ctx context.Context, gene *model.Gene) error {
	return g.update(ctx, gene, string(model.VariantGene), gene.ID, "external_id", gene.ExternalID)
}

func (g *GormStore) DeleteGene(ctx context.Context, id string) error {
	return g.deleteByID(ctx, &model.Gene{}, string(model.VariantGene), id)
}

func (g *GormStore) CountGeneProteins(ctx context.Context, geneID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Protein{}).Where("gene_id = ?", geneID).Count(&count).Error
	return count, translate(err, opWrite, string(model.VariantProtein), "gene_id", geneID)
}

func (g *GormStore) CreateProtein(ctx context.Context, protein *model.Protein) error {
	err := g.write(ctx).Create(protein).Error
	return translate(err, opWrite, string(model.VariantProtein), "external_id", protein.ExternalID)
}

func (g *GormStore) GetProtein(ctx context.Context, id string) (*model.Protein, error) {
	var protein model.Protein
	err := g.read(ctx).Preload("Organism").Preload("Gene").Where("id = ?", id).First(&protein).Error
	if err != nil {
		return nil, translate(err, opWrite, string(model.VariantProtein), "id", id)
	}
	return &protein, nil
}

func (g *GormStore) GetProteinByExternalID(ctx context.Context, externalID string) (*model.Protein, error) {
	var protein model.Protein
	err := g.read(ctx).Preload("Organism").Preload("Gene").Where("external_id = ?", externalID).First(&protein).Error
	if err != nil {
		return nil, translate(err, opWrite, string(model.VariantProtein), "external_id", externalID)
	}
	return &protein, nil
}

func (g *GormStore) ListProteins(ctx context.Context, filter ProteinFilter) ([]*model.Protein, error) {
	var proteins []*model.Protein
	db := g.db.WithContext(ctx).Preload("Organism")
	if filter.OrganismID != "" {
		db = db.Where("organism_id = ?", filter.OrganismID)
	}
	if filter.GeneID != "" {
		db = db.Where("gene_id = ?", filter.GeneID)
	}
	err := db.Order("external_id").Find(&proteins).Error
	return proteins, translate(err, opWrite, string(model.VariantProtein), "", "")
}

func (g *GormStore) UpdateProtein(ctx context.Context, protein *model.Protein) error {
	return g.update(ctx, protein, string(model.VariantProtein), protein.ID, "external_id", protein.ExternalID)
}

func (g *GormStore) DeleteProtein(ctx context.Context, id string) error {
	return g.deleteByID(ctx, &model.Protein{}, string(model.VariantProtein), id)
}

func (g *GormStore) ListIsoformCounts(ctx context.Context) ([]*IsoformCount, error) {
	var counts []*IsoformCount
	err := g.db.WithContext(ctx).
		Model(&model.Gene{}).
		Select("gene.id AS gene_id, COUNT(protein.id) AS proteins, " +
			"COALESCE(SUM(CASE WHEN protein.is_canonical_isoform THEN 1 ELSE 0 END), 0) AS canonical").
		Joins("LEFT JOIN protein ON protein.gene_id = gene.id").
		Group("gene.id").
		Order("gene.id").
		Scan(&counts).Error
	return counts, translate(err, opWrite, string(model.VariantGene), "", "")
}

func (g *GormStore) ResolveVariant(ctx context.Context, id string) (model.Variant, error) {
	for _, v := range model.Variants() {
		var count int64
		err := g.db.WithContext(ctx).Table(model.EntityTable(v)).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return "", translate(err, opWrite, string(v), "id", id)
		}
		if count > 0 {
			return v, nil
		}
	}
	return "", NewError(ErrNotFound, "entity", "id", id)
}
