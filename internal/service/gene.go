package service

import (
	"context"
	"fmt"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const entityGene = string(model.VariantGene)

// NewGeneService creates a new GeneService.
func NewGeneService(store store.Store) *GeneService {
	return &GeneService{
		store: store,
	}
}

// GeneService manages genes.
type GeneService struct {
	store store.Store
}

// EntityFields are the attributes shared by genes and proteins.
type EntityFields struct {
	OrganismID  string
	ExternalID  string
	DisplayName string
	Sequence    *string
}

// entity validates the shared attributes of a new gene or protein.
func (f *EntityFields) entity(entity string) (model.Entity, error) {
	organismID, err := required(entity, "organism_id", f.OrganismID, 0)
	if err != nil {
		return model.Entity{}, err
	}
	externalID, err := required(entity, "external_id", f.ExternalID, maxExternalID)
	if err != nil {
		return model.Entity{}, err
	}
	displayName, err := required(entity, "display_name", f.DisplayName, maxDisplayName)
	if err != nil {
		return model.Entity{}, err
	}
	seq, err := sequence(entity, f.Sequence)
	if err != nil {
		return model.Entity{}, err
	}

	return model.Entity{
		ID:          uuid.New().String(),
		OrganismID:  organismID,
		ExternalID:  externalID,
		DisplayName: displayName,
		Sequence:    seq,
	}, nil
}

type CreateGeneRequest struct {
	EntityFields
}

// Create registers a gene of an existing organism.
func (s *GeneService) Create(ctx context.Context, request *CreateGeneRequest) (*model.Gene, error) {
	entity, err := request.entity(entityGene)
	if err != nil {
		return nil, err
	}

	gene := &model.Gene{Entity: entity}
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		org, err := lookupOrganism(ctx, tx, entityGene, gene.OrganismID)
		if err != nil {
			return err
		}
		gene.Organism = org

		return tx.CreateGene(ctx, gene)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created gene %s (%s)", gene.ExternalID, gene.Label(gene.Organism))

	return gene, nil
}

// Get retrieves a gene by ID.
func (s *GeneService) Get(ctx context.Context, id string) (*model.Gene, error) {
	return s.store.GetGene(ctx, id)
}

// GetByExternalID retrieves a gene by its external id.
func (s *GeneService) GetByExternalID(ctx context.Context, externalID string) (*model.Gene, error) {
	return s.store.GetGeneByExternalID(ctx, externalID)
}

// List retrieves all genes, or the genes of one organism.
func (s *GeneService) List(ctx context.Context, organismID string) ([]*model.Gene, error) {
	return s.store.ListGenes(ctx, organismID)
}

// Isoforms retrieves the proteins of a gene.
func (s *GeneService) Isoforms(ctx context.Context, geneID string) ([]*model.Protein, error) {
	if _, err := s.store.GetGene(ctx, geneID); err != nil {
		return nil, err
	}
	return s.store.ListProteins(ctx, store.ProteinFilter{GeneID: geneID})
}

type UpdateGeneRequest struct {
	ID          string
	DisplayName *string
	// Sequence replaces the sequence when set; a blank value clears it.
	Sequence *string
}

// Update changes the display name or sequence of a gene.
func (s *GeneService) Update(ctx context.Context, request *UpdateGeneRequest) (*model.Gene, error) {
	var displayName string
	var err error
	if request.DisplayName != nil {
		if displayName, err = required(entityGene, "display_name", *request.DisplayName, maxDisplayName); err != nil {
			return nil, err
		}
	}
	seq, err := sequence(entityGene, request.Sequence)
	if err != nil {
		return nil, err
	}

	var gene *model.Gene
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		gene, err = tx.ForUpdate().GetGene(ctx, request.ID)
		if err != nil {
			return err
		}
		if request.DisplayName != nil {
			gene.DisplayName = displayName
		}
		if request.Sequence != nil {
			gene.Sequence = seq
		}
		return tx.UpdateGene(ctx, gene)
	})
	if err != nil {
		return nil, err
	}

	return gene, nil
}

// Delete removes a gene together with its annotations and relation edges.
// Genes that still own proteins cannot be deleted; their isoforms must be
// removed or moved to another gene first.
func (s *GeneService) Delete(ctx context.Context, id string) error {
	var gene *model.Gene
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		gene, err = tx.ForUpdate().GetGene(ctx, id)
		if err != nil {
			return err
		}

		count, err := tx.CountGeneProteins(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &store.Error{Kind: ErrConflict, Entity: entityGene, Field: "id", Value: gene.ExternalID,
				Err: fmt.Errorf("referenced by %d proteins", count)}
		}

		if err := tx.DeleteEntityEdges(ctx, model.VariantGene, id); err != nil {
			return err
		}
		return tx.DeleteGene(ctx, id)
	})
	if err != nil {
		return err
	}

	logrus.Infof("deleted gene %s", gene.ExternalID)

	return nil
}
