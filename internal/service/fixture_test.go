package service

import (
	"context"
	"testing"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/emrgen/bioref/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx        context.Context
	store      store.Store
	cache      *tester.Memory
	terms      *OntologyTermService
	organisms  *OrganismService
	structures *StructureService
	genes      *GeneService
	proteins   *ProteinService
	relations  *RelationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tester.Setup()

	s := store.NewGormStore(tester.TestDB())
	c := tester.NewMemory()

	return &fixture{
		ctx:        context.TODO(),
		store:      s,
		cache:      c,
		terms:      NewOntologyTermService(s, c),
		organisms:  NewOrganismService(s, c),
		structures: NewStructureService(s),
		genes:      NewGeneService(s),
		proteins:   NewProteinService(s),
		relations:  NewRelationService(s),
	}
}

func category(c model.Category) *model.Category {
	return &c
}

func ptr[T any](v T) *T {
	return &v
}

// shortID returns a unique id that fits the external id column.
func shortID(prefix string) string {
	return prefix + uuid.New().String()[:8]
}

func (f *fixture) organism(t *testing.T, binaryName, shortName string) *model.Organism {
	t.Helper()
	org, err := f.organisms.Create(f.ctx, &CreateOrganismRequest{BinaryName: binaryName, ShortName: shortName})
	require.NoError(t, err)
	return org
}

func (f *fixture) term(t *testing.T, goID, description string, c *model.Category) *model.OntologyTerm {
	t.Helper()
	term, err := f.terms.Create(f.ctx, &CreateOntologyTermRequest{GoID: goID, Description: description, Category: c})
	require.NoError(t, err)
	return term
}

func (f *fixture) gene(t *testing.T, organismID string) *model.Gene {
	t.Helper()
	gene, err := f.genes.Create(f.ctx, &CreateGeneRequest{EntityFields{
		OrganismID:  organismID,
		ExternalID:  shortID("ENSG"),
		DisplayName: "GENE",
	}})
	require.NoError(t, err)
	return gene
}

func (f *fixture) protein(t *testing.T, organismID, geneID string, canonical bool) *model.Protein {
	t.Helper()
	protein, err := f.proteins.Create(f.ctx, &CreateProteinRequest{
		EntityFields: EntityFields{
			OrganismID:  organismID,
			ExternalID:  shortID("ENSP"),
			DisplayName: "PROT",
		},
		GeneID:             geneID,
		IsCanonicalIsoform: canonical,
		UniprotID:          shortID("Q"),
	})
	require.NoError(t, err)
	return protein
}

// requireKind checks the error kind and the field it was raised for.
func requireKind(t *testing.T, err error, kind error, field string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)

	var se *store.Error
	require.ErrorAs(t, err, &se)
	if field != "" {
		require.Equal(t, field, se.Field)
	}
}
