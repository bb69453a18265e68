package service

import (
	"fmt"
	"testing"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRelationService_Annotate(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	protein := f.protein(t, org.ID, gene.ID, true)

	terms := map[string]*model.OntologyTerm{
		"cc":   f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent)),
		"bp":   f.term(t, "GO:0006826", "iron ion transport", category(model.CategoryBiologicalProcess)),
		"mf":   f.term(t, "GO:0015093", "ferrous iron transmembrane transporter activity", category(model.CategoryMolecularFunction)),
		"none": f.term(t, "GO:0000000", "uncategorised", nil),
	}

	for _, entityID := range []string{gene.ID, protein.ID} {
		for key, term := range terms {
			for _, slot := range model.Slots() {
				name := fmt.Sprintf("%s in %s", key, slot)
				t.Run(name, func(t *testing.T) {
					err := f.relations.Annotate(f.ctx, entityID, slot, term.ID)
					if term.Category != nil && *term.Category == slot.Category() {
						require.NoError(t, err)
						return
					}
					requireKind(t, err, ErrCategoryMismatch, "term_id")
					assert.False(t, IsRetryable(err))
				})
			}
		}

		for _, slot := range model.Slots() {
			got, err := f.relations.Annotations(f.ctx, entityID, slot)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, slot.Category(), *got[0].Category)
		}
	}
}

func TestRelationService_AnnotateIdempotent(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	term := f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))

	require.NoError(t, f.relations.Annotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))
	require.NoError(t, f.relations.Annotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))

	got, err := f.relations.Annotations(f.ctx, gene.ID, model.SlotCellularComponent)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, f.relations.Unannotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))
	require.NoError(t, f.relations.Unannotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))

	got, err = f.relations.Annotations(f.ctx, gene.ID, model.SlotCellularComponent)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRelationService_AnnotateNotFound(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	term := f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))

	err := f.relations.Annotate(f.ctx, "missing", model.SlotCellularComponent, term.ID)
	requireKind(t, err, ErrNotFound, "entity_id")

	err = f.relations.Annotate(f.ctx, gene.ID, model.SlotCellularComponent, "missing")
	requireKind(t, err, ErrNotFound, "term_id")

	err = f.relations.Annotate(f.ctx, gene.ID, model.Slot("nucleus"), term.ID)
	requireKind(t, err, ErrInvalidArgument, "slot")
}

func TestRelationService_LinkInteraction(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	a := f.protein(t, org.ID, gene.ID, true)
	b := f.protein(t, org.ID, gene.ID, false)

	require.NoError(t, f.relations.LinkInteraction(f.ctx, a.ID, b.ID))
	require.NoError(t, f.relations.LinkInteraction(f.ctx, b.ID, a.ID))
	require.NoError(t, f.relations.LinkInteraction(f.ctx, a.ID, b.ID))

	var count int64
	require.NoError(t, tester.TestDB().Table(model.RelationTable(model.VariantProtein, model.RelationInteraction)).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	fromA, err := f.relations.Interactions(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, fromA)

	fromB, err := f.relations.Interactions(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, fromB)

	// homology is tracked independently
	homologues, err := f.relations.Homologues(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, homologues)

	require.NoError(t, f.relations.UnlinkInteraction(f.ctx, b.ID, a.ID))
	fromA, err = f.relations.Interactions(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, fromA)
}

func TestRelationService_LinkConcurrent(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	a := f.gene(t, org.ID)
	b := f.gene(t, org.ID)

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			return f.relations.LinkHomologue(f.ctx, a.ID, b.ID)
		})
		g.Go(func() error {
			return f.relations.LinkHomologue(f.ctx, b.ID, a.ID)
		})
	}
	require.NoError(t, g.Wait())

	var count int64
	require.NoError(t, tester.TestDB().Table(model.RelationTable(model.VariantGene, model.RelationHomologue)).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRelationService_LinkRejected(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	protein := f.protein(t, org.ID, gene.ID, true)

	err := f.relations.LinkInteraction(f.ctx, protein.ID, protein.ID)
	requireKind(t, err, ErrSelfLoop, "")

	err = f.relations.LinkHomologue(f.ctx, gene.ID, gene.ID)
	requireKind(t, err, ErrSelfLoop, "")

	err = f.relations.LinkInteraction(f.ctx, gene.ID, protein.ID)
	requireKind(t, err, ErrTypeMismatch, "")

	err = f.relations.LinkHomologue(f.ctx, protein.ID, gene.ID)
	requireKind(t, err, ErrTypeMismatch, "")

	err = f.relations.LinkInteraction(f.ctx, gene.ID, "missing")
	requireKind(t, err, ErrNotFound, "entity_id_b")

	err = f.relations.UnlinkHomologue(f.ctx, "missing", gene.ID)
	requireKind(t, err, ErrNotFound, "entity_id_a")

	_, err = f.relations.Interactions(f.ctx, "missing")
	requireKind(t, err, ErrNotFound, "id")
}

func TestRelationService_EndToEnd(t *testing.T) {
	f := newFixture(t)

	org, err := f.organisms.Create(f.ctx, &CreateOrganismRequest{BinaryName: "Homo sapiens", ShortName: "human"})
	require.NoError(t, err)

	gene, err := f.genes.Create(f.ctx, &CreateGeneRequest{EntityFields{
		OrganismID:  org.ID,
		ExternalID:  "ENSG001",
		DisplayName: "DMT1",
	}})
	require.NoError(t, err)

	protein, err := f.proteins.Create(f.ctx, &CreateProteinRequest{
		EntityFields:       EntityFields{OrganismID: org.ID, ExternalID: "ENSP001", DisplayName: "DMT1-1"},
		GeneID:             gene.ID,
		IsCanonicalIsoform: true,
		UniprotID:          "Q9NP59",
	})
	require.NoError(t, err)

	cc, err := model.ParseCategory("CellularComponent")
	require.NoError(t, err)
	term, err := f.terms.Create(f.ctx, &CreateOntologyTermRequest{GoID: "GO:0005886", Description: "plasma membrane", Category: &cc})
	require.NoError(t, err)

	require.NoError(t, f.relations.Annotate(f.ctx, protein.ID, model.SlotCellularComponent, term.ID))

	err = f.relations.Annotate(f.ctx, protein.ID, model.SlotBiologicalProcess, term.ID)
	requireKind(t, err, ErrCategoryMismatch, "term_id")

	annotations, err := f.relations.Annotations(f.ctx, protein.ID, model.SlotCellularComponent)
	require.NoError(t, err)
	require.Len(t, annotations, 1)
	assert.Equal(t, "GO:0005886 (plasma membrane)", annotations[0].String())

	annotations, err = f.relations.Annotations(f.ctx, protein.ID, model.SlotBiologicalProcess)
	require.NoError(t, err)
	assert.Empty(t, annotations)
}
