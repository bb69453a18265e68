package store

import (
	"context"
	"testing"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*GormStore, *model.Organism, *model.Gene) {
	t.Helper()
	tester.Setup()

	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	org := &model.Organism{ID: uuid.New().String(), BinaryName: "Homo sapiens", ShortName: "human"}
	require.NoError(t, s.CreateOrganism(ctx, org))

	gene := &model.Gene{Entity: model.Entity{ID: uuid.New().String(), OrganismID: org.ID, ExternalID: "ENSG001", DisplayName: "DMT1"}}
	require.NoError(t, s.CreateGene(ctx, gene))

	return s, org, gene
}

func newProtein(t *testing.T, s *GormStore, org *model.Organism, gene *model.Gene, externalID string, canonical bool) *model.Protein {
	t.Helper()
	protein := &model.Protein{
		Entity:             model.Entity{ID: uuid.New().String(), OrganismID: org.ID, ExternalID: externalID, DisplayName: externalID},
		GeneID:             gene.ID,
		IsCanonicalIsoform: canonical,
		UniprotID:          "Q9NP59",
	}
	require.NoError(t, s.CreateProtein(context.TODO(), protein))
	return protein
}

func TestGormStore_UniqueKeys(t *testing.T) {
	s, org, _ := newTestStore(t)
	ctx := context.TODO()

	err := s.CreateOrganism(ctx, &model.Organism{ID: uuid.New().String(), BinaryName: org.BinaryName, ShortName: "x"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	term := &model.OntologyTerm{ID: uuid.New().String(), GoID: "GO:0005886", Description: "plasma membrane"}
	require.NoError(t, s.CreateOntologyTerm(ctx, term))
	err = s.CreateOntologyTerm(ctx, &model.OntologyTerm{ID: uuid.New().String(), GoID: "GO:0005886", Description: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	err = s.CreateGene(ctx, &model.Gene{Entity: model.Entity{ID: uuid.New().String(), OrganismID: org.ID, ExternalID: "ENSG001", DisplayName: "X"}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestGormStore_ForeignKeys(t *testing.T) {
	s, org, gene := newTestStore(t)
	ctx := context.TODO()

	err := s.CreateGene(ctx, &model.Gene{Entity: model.Entity{ID: uuid.New().String(), OrganismID: "missing", ExternalID: "ENSG002", DisplayName: "X"}})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteOrganism(ctx, org.ID)
	assert.ErrorIs(t, err, ErrConflict)

	newProtein(t, s, org, gene, "ENSP001", true)
	err = s.DeleteGene(ctx, gene.ID)
	assert.ErrorIs(t, err, ErrConflict)

	count, err := s.CountOrganismReferences(ctx, org.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGormStore_Edges(t *testing.T) {
	s, org, gene := newTestStore(t)
	ctx := context.TODO()
	a := newProtein(t, s, org, gene, "ENSP001", true)
	b := newProtein(t, s, org, gene, "ENSP002", false)
	c := newProtein(t, s, org, gene, "ENSP003", false)

	require.NoError(t, s.AddEdge(ctx, model.VariantProtein, model.RelationInteraction, a.ID, b.ID))
	require.NoError(t, s.AddEdge(ctx, model.VariantProtein, model.RelationInteraction, b.ID, a.ID))
	require.NoError(t, s.AddEdge(ctx, model.VariantProtein, model.RelationInteraction, c.ID, a.ID))
	require.NoError(t, s.AddEdge(ctx, model.VariantProtein, model.RelationHomologue, b.ID, c.ID))

	partners, err := s.ListEdges(ctx, model.VariantProtein, model.RelationInteraction, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID, c.ID}, partners)

	structure := &model.Structure{ID: uuid.New().String(), StructureID: "1ABC"}
	require.NoError(t, s.CreateStructure(ctx, structure))
	require.NoError(t, s.AttachStructure(ctx, a.ID, structure.ID))
	require.NoError(t, s.AttachStructure(ctx, a.ID, structure.ID))

	structures, err := s.ListProteinStructures(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, structures, 1)

	require.NoError(t, s.DeleteEntityEdges(ctx, model.VariantProtein, a.ID))

	partners, err = s.ListEdges(ctx, model.VariantProtein, model.RelationInteraction, b.ID)
	require.NoError(t, err)
	assert.Empty(t, partners)

	// edges that do not touch a survive
	partners, err = s.ListEdges(ctx, model.VariantProtein, model.RelationHomologue, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, partners)

	structures, err = s.ListProteinStructures(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, structures)
}

func TestGormStore_ResolveVariant(t *testing.T) {
	s, org, gene := newTestStore(t)
	ctx := context.TODO()
	protein := newProtein(t, s, org, gene, "ENSP001", true)

	v, err := s.ResolveVariant(ctx, gene.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VariantGene, v)

	v, err = s.ResolveVariant(ctx, protein.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VariantProtein, v)

	_, err = s.ResolveVariant(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_Audit(t *testing.T) {
	s, org, gene := newTestStore(t)
	ctx := context.TODO()
	newProtein(t, s, org, gene, "ENSP001", true)
	newProtein(t, s, org, gene, "ENSP002", true)
	newProtein(t, s, org, gene, "ENSP003", false)

	lonely := &model.Gene{Entity: model.Entity{ID: uuid.New().String(), OrganismID: org.ID, ExternalID: "ENSG002", DisplayName: "X"}}
	require.NoError(t, s.CreateGene(ctx, lonely))

	counts, err := s.ListIsoformCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byGene := map[string]*IsoformCount{}
	for _, c := range counts {
		byGene[c.GeneID] = c
	}
	assert.EqualValues(t, 3, byGene[gene.ID].Proteins)
	assert.EqualValues(t, 2, byGene[gene.ID].Canonical)
	assert.EqualValues(t, 0, byGene[lonely.ID].Proteins)
	assert.EqualValues(t, 0, byGene[lonely.ID].Canonical)

	cc := model.CategoryCellularComponent
	term := &model.OntologyTerm{ID: uuid.New().String(), GoID: "GO:0005886", Description: "plasma membrane", Category: &cc}
	require.NoError(t, s.CreateOntologyTerm(ctx, term))

	require.NoError(t, s.AddAnnotation(ctx, model.VariantGene, model.SlotCellularComponent, gene.ID, term.ID))
	// the store does not check categories, the service layer does
	require.NoError(t, s.AddAnnotation(ctx, model.VariantGene, model.SlotMolecularFunction, gene.ID, term.ID))

	misplaced, err := s.ListMisplacedAnnotations(ctx)
	require.NoError(t, err)
	require.Len(t, misplaced, 1)
	assert.Equal(t, "gene_go_mf", misplaced[0].Table)
	assert.Equal(t, gene.ID, misplaced[0].EntityID)

	count, err := s.CountTermAnnotations(ctx, term.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGormStore_Transaction(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.TODO()

	term := &model.OntologyTerm{ID: uuid.New().String(), GoID: "GO:0000001", Description: "rolled back"}
	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateOntologyTerm(ctx, term); err != nil {
			return err
		}
		return tx.CreateOntologyTerm(ctx, &model.OntologyTerm{ID: uuid.New().String(), GoID: "GO:0000001", Description: "dup"})
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = s.GetOntologyTermByGoID(ctx, "GO:0000001")
	assert.ErrorIs(t, err, ErrNotFound)
}
