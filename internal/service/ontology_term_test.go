package service

import (
	"fmt"
	"testing"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOntologyTermService_Create(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		request *CreateOntologyTermRequest
		kind    error
		field   string
	}{
		{
			name:    "with category",
			request: &CreateOntologyTermRequest{GoID: "GO:0005886", Description: "plasma membrane", Category: category(model.CategoryCellularComponent)},
		},
		{
			name:    "without category",
			request: &CreateOntologyTermRequest{GoID: "GO:0008150", Description: "biological_process"},
		},
		{
			name:    "duplicate go_id",
			request: &CreateOntologyTermRequest{GoID: "GO:0005886", Description: "other", Category: category(model.CategoryMolecularFunction)},
			kind:    ErrDuplicateKey,
		},
		{
			name:    "blank go_id",
			request: &CreateOntologyTermRequest{GoID: "  ", Description: "blank"},
			kind:    ErrInvalidArgument,
			field:   "go_id",
		},
		{
			name:    "go_id too long",
			request: &CreateOntologyTermRequest{GoID: "GO:000000000000000000", Description: "long"},
			kind:    ErrInvalidArgument,
			field:   "go_id",
		},
		{
			name:    "blank description",
			request: &CreateOntologyTermRequest{GoID: "GO:0000001"},
			kind:    ErrInvalidArgument,
			field:   "description",
		},
		{
			name:    "unknown category",
			request: &CreateOntologyTermRequest{GoID: "GO:0000002", Description: "x", Category: category("xx")},
			kind:    ErrInvalidArgument,
			field:   "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := f.terms.Create(f.ctx, tt.request)
			if tt.kind != nil {
				requireKind(t, err, tt.kind, tt.field)
				assert.False(t, IsRetryable(err))
				return
			}
			require.NoError(t, err)

			got, err := f.terms.Get(f.ctx, term.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.request.GoID, got.GoID)
			assert.Equal(t, tt.request.Category, got.Category)
		})
	}
}

func TestOntologyTermService_GetByGoID(t *testing.T) {
	f := newFixture(t)
	term := f.term(t, "GO:0005737", "cytoplasm", category(model.CategoryCellularComponent))

	_, err := f.terms.GetByGoID(f.ctx, "GO:9999999")
	requireKind(t, err, ErrNotFound, "")

	got, err := f.terms.GetByGoID(f.ctx, term.GoID)
	require.NoError(t, err)
	assert.Equal(t, term.ID, got.ID)
	assert.True(t, f.cache.Has(cache.TermKey(term.GoID)))

	// a cached read does not touch the database
	require.NoError(t, f.store.DeleteOntologyTerm(f.ctx, term.ID))
	got, err = f.terms.GetByGoID(f.ctx, term.GoID)
	require.NoError(t, err)
	assert.Equal(t, "cytoplasm", got.Description)
}

func TestOntologyTermService_List(t *testing.T) {
	f := newFixture(t)
	f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))
	f.term(t, "GO:0006826", "iron ion transport", category(model.CategoryBiologicalProcess))
	f.term(t, "GO:0015093", "ferrous iron transmembrane transporter activity", category(model.CategoryMolecularFunction))
	f.term(t, "GO:0000000", "uncategorised", nil)

	all, err := f.terms.List(f.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	process, err := f.terms.List(f.ctx, category(model.CategoryBiologicalProcess))
	require.NoError(t, err)
	require.Len(t, process, 1)
	assert.Equal(t, "GO:0006826", process[0].GoID)
}

func TestOntologyTermService_Update(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	used := f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))
	free := f.term(t, "GO:0005634", "nucleus", nil)

	require.NoError(t, f.relations.Annotate(f.ctx, gene.ID, model.SlotCellularComponent, used.ID))

	// description changes are always allowed
	got, err := f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: used.ID, Description: ptr("cell membrane")})
	require.NoError(t, err)
	assert.Equal(t, "cell membrane", got.Description)
	assert.Equal(t, model.CategoryCellularComponent, *got.Category)

	_, err = f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: used.ID, Category: category(model.CategoryMolecularFunction)})
	requireKind(t, err, ErrConflict, "category")

	_, err = f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: used.ID, ClearCategory: true})
	requireKind(t, err, ErrConflict, "category")

	got, err = f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: free.ID, Category: category(model.CategoryCellularComponent)})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCellularComponent, *got.Category)

	got, err = f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: free.ID, ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, got.Category)

	_, err = f.terms.Update(f.ctx, &UpdateOntologyTermRequest{ID: "missing", Description: ptr("x")})
	requireKind(t, err, ErrNotFound, "")
}

func TestOntologyTermService_Delete(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Homo sapiens", "human")
	gene := f.gene(t, org.ID)
	term := f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))

	require.NoError(t, f.relations.Annotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))
	_, err := f.terms.GetByGoID(f.ctx, term.GoID)
	require.NoError(t, err)

	err = f.terms.Delete(f.ctx, term.ID)
	requireKind(t, err, ErrConflict, "id")

	require.NoError(t, f.relations.Unannotate(f.ctx, gene.ID, model.SlotCellularComponent, term.ID))
	require.NoError(t, f.terms.Delete(f.ctx, term.ID))
	assert.False(t, f.cache.Has(cache.TermKey(term.GoID)))

	err = f.terms.Delete(f.ctx, term.ID)
	requireKind(t, err, ErrNotFound, "")

	// the accession can be reused after a hard delete
	f.term(t, "GO:0005886", "plasma membrane", category(model.CategoryCellularComponent))
}

func TestOntologyTermService_Import(t *testing.T) {
	f := newFixture(t)
	f.term(t, "GO:0000001", "existing", category(model.CategoryBiologicalProcess))

	var requests []*CreateOntologyTermRequest
	requests = append(requests, &CreateOntologyTermRequest{GoID: "GO:0000001", Description: "existing", Category: category(model.CategoryBiologicalProcess)})
	for i := 2; i <= importBatchSize+10; i++ {
		requests = append(requests, &CreateOntologyTermRequest{
			GoID:        fmt.Sprintf("GO:%07d", i),
			Description: "term",
			Category:    category(model.CategoryMolecularFunction),
		})
	}

	result, err := f.terms.Import(f.ctx, requests)
	require.NoError(t, err)
	assert.Equal(t, importBatchSize+9, result.Created)
	assert.Equal(t, 1, result.Skipped)

	// a second run only skips
	result, err = f.terms.Import(f.ctx, requests)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, len(requests), result.Skipped)

	all, err := f.terms.List(f.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(requests))
}
