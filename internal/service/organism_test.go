package service

import (
	"testing"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganismService_Create(t *testing.T) {
	f := newFixture(t)

	org := f.organism(t, "Homo sapiens", "human")
	assert.Equal(t, "human", org.String())

	_, err := f.organisms.Create(f.ctx, &CreateOrganismRequest{BinaryName: "Homo sapiens", ShortName: "man"})
	requireKind(t, err, ErrDuplicateKey, "")

	_, err = f.organisms.Create(f.ctx, &CreateOrganismRequest{BinaryName: "Mus musculus"})
	requireKind(t, err, ErrInvalidArgument, "short_name")

	_, err = f.organisms.Create(f.ctx, &CreateOrganismRequest{BinaryName: "Saccharomyces cerevisiae S288C strain", ShortName: "yeast"})
	requireKind(t, err, ErrInvalidArgument, "binary_name")

	list, err := f.organisms.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrganismService_Update(t *testing.T) {
	f := newFixture(t)
	org := f.organism(t, "Mus musculus", "mouse")

	_, err := f.organisms.GetByBinaryName(f.ctx, org.BinaryName)
	require.NoError(t, err)
	assert.True(t, f.cache.Has(cache.OrganismKey(org.BinaryName)))

	got, err := f.organisms.Update(f.ctx, &UpdateOrganismRequest{ID: org.ID, ShortName: ptr("house mouse")})
	require.NoError(t, err)
	assert.Equal(t, "house mouse", got.ShortName)
	assert.False(t, f.cache.Has(cache.OrganismKey(org.BinaryName)))

	got, err = f.organisms.GetByBinaryName(f.ctx, org.BinaryName)
	require.NoError(t, err)
	assert.Equal(t, "house mouse", got.ShortName)

	_, err = f.organisms.Update(f.ctx, &UpdateOrganismRequest{ID: org.ID, ShortName: ptr("")})
	requireKind(t, err, ErrInvalidArgument, "short_name")
}

func TestOrganismService_Delete(t *testing.T) {
	f := newFixture(t)
	used := f.organism(t, "Homo sapiens", "human")
	free := f.organism(t, "Danio rerio", "zebrafish")
	f.gene(t, used.ID)

	err := f.organisms.Delete(f.ctx, used.ID)
	requireKind(t, err, ErrConflict, "id")

	_, err = f.organisms.Get(f.ctx, used.ID)
	require.NoError(t, err)

	require.NoError(t, f.organisms.Delete(f.ctx, free.ID))
	_, err = f.organisms.Get(f.ctx, free.ID)
	requireKind(t, err, ErrNotFound, "")
}
