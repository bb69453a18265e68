package bioref

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/emrgen/bioref/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := Open(&Config{
		DbDriver: "sqlite",
		DbDsn:    filepath.Join(t.TempDir(), "bioref.db"),
		LogLevel: logrus.WarnLevel,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Migrate())
	return client
}

func TestClient_DMT1(t *testing.T) {
	client := openTestClient(t)
	ctx := context.TODO()

	human, err := client.Organisms.Create(ctx, &CreateOrganismRequest{BinaryName: "Homo sapiens", ShortName: "HUMAN"})
	require.NoError(t, err)

	cc := model.CategoryCellularComponent
	membrane, err := client.Terms.Create(ctx, &CreateOntologyTermRequest{
		GoID:        "GO:0016020",
		Description: "membrane",
		Category:    &cc,
	})
	require.NoError(t, err)

	gene, err := client.Genes.Create(ctx, &CreateGeneRequest{EntityFields: EntityFields{
		OrganismID:  human.ID,
		ExternalID:  "ENSG00000110911",
		DisplayName: "SLC11A2",
	}})
	require.NoError(t, err)

	protein, err := client.Proteins.Create(ctx, &CreateProteinRequest{
		EntityFields: EntityFields{
			OrganismID:  human.ID,
			ExternalID:  "ENSP00000262052",
			DisplayName: "NRAM2",
		},
		GeneID:             gene.ID,
		ProteinName:        "Natural resistance-associated macrophage protein 2",
		IsCanonicalIsoform: true,
		UniprotID:          "P49281",
	})
	require.NoError(t, err)

	require.NoError(t, client.Relations.Annotate(ctx, protein.ID, model.SlotCellularComponent, membrane.ID))

	err = client.Relations.Annotate(ctx, protein.ID, model.SlotMolecularFunction, membrane.ID)
	assert.ErrorIs(t, err, ErrCategoryMismatch)

	err = client.Relations.LinkInteraction(ctx, gene.ID, protein.ID)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.False(t, IsRetryable(err))

	terms, err := client.Relations.Annotations(ctx, protein.ID, model.SlotCellularComponent)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "GO:0016020", terms[0].GoID)

	isoforms, err := client.Genes.Isoforms(ctx, gene.ID)
	require.NoError(t, err)
	require.Len(t, isoforms, 1)
	assert.Equal(t, protein.ID, isoforms[0].ID)

	err = client.Terms.Delete(ctx, membrane.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestNew_NilCache(t *testing.T) {
	client := openTestClient(t)

	c := New(client.db, nil)
	require.NotNil(t, c.Cache())

	ok, err := c.Cache().Get(context.TODO(), "missing", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, ok)
}
