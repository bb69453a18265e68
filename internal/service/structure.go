package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const entityStructure = "structure"

// NewStructureService creates a new StructureService.
func NewStructureService(store store.Store) *StructureService {
	return &StructureService{
		store: store,
	}
}

// StructureService manages protein data bank records and their protein links.
type StructureService struct {
	store store.Store
}

// Create registers a structure accession. The same accession may be
// registered more than once.
func (s *StructureService) Create(ctx context.Context, structureID string) (*model.Structure, error) {
	accession, err := required(entityStructure, "structure_id", structureID, maxStructureID)
	if err != nil {
		return nil, err
	}

	structure := &model.Structure{
		ID:          uuid.New().String(),
		StructureID: strings.ToUpper(accession),
	}
	if err := s.store.CreateStructure(ctx, structure); err != nil {
		return nil, err
	}

	logrus.Infof("created structure %s", structure.StructureID)

	return structure, nil
}

// Get retrieves a structure by ID.
func (s *StructureService) Get(ctx context.Context, id string) (*model.Structure, error) {
	return s.store.GetStructure(ctx, id)
}

// List retrieves every structure, or the records of one accession.
func (s *StructureService) List(ctx context.Context, accession string) ([]*model.Structure, error) {
	return s.store.ListStructures(ctx, strings.ToUpper(strings.TrimSpace(accession)))
}

// Delete removes a structure that is not attached to any protein.
func (s *StructureService) Delete(ctx context.Context, id string) error {
	var structure *model.Structure
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		structure, err = tx.ForUpdate().GetStructure(ctx, id)
		if err != nil {
			return err
		}

		proteins, err := tx.ListStructureProteins(ctx, id)
		if err != nil {
			return err
		}
		if len(proteins) > 0 {
			return &store.Error{Kind: ErrConflict, Entity: entityStructure, Field: "id", Value: structure.StructureID,
				Err: fmt.Errorf("attached to %d proteins", len(proteins))}
		}

		return tx.DeleteStructure(ctx, id)
	})
	if err != nil {
		return err
	}

	logrus.Infof("deleted structure %s", structure.StructureID)

	return nil
}

// Attach links a protein to a structure. Attaching twice is a no-op.
func (s *StructureService) Attach(ctx context.Context, proteinID, structureID string) error {
	return attachStructure(ctx, s.store, proteinID, structureID)
}

// Detach unlinks a protein from a structure. Detaching a missing link is a no-op.
func (s *StructureService) Detach(ctx context.Context, proteinID, structureID string) error {
	return detachStructure(ctx, s.store, proteinID, structureID)
}

// ListProteins retrieves the proteins covered by a structure.
func (s *StructureService) ListProteins(ctx context.Context, structureID string) ([]*model.Protein, error) {
	if _, err := s.store.GetStructure(ctx, structureID); err != nil {
		return nil, err
	}
	return s.store.ListStructureProteins(ctx, structureID)
}

// lockStructureLink locks both ends of a protein_structure edge.
func lockStructureLink(ctx context.Context, tx store.Store, proteinID, structureID string) error {
	if _, err := tx.ForUpdate().GetProtein(ctx, proteinID); err != nil {
		return refNotFound(err, "protein_structure", "protein_id", proteinID)
	}
	if _, err := tx.ForUpdate().GetStructure(ctx, structureID); err != nil {
		return refNotFound(err, "protein_structure", "structure_id", structureID)
	}
	return nil
}

func attachStructure(ctx context.Context, s store.Store, proteinID, structureID string) error {
	return s.Transaction(ctx, func(tx store.Store) error {
		if err := lockStructureLink(ctx, tx, proteinID, structureID); err != nil {
			return err
		}
		return tx.AttachStructure(ctx, proteinID, structureID)
	})
}

func detachStructure(ctx context.Context, s store.Store, proteinID, structureID string) error {
	return s.Transaction(ctx, func(tx store.Store) error {
		if err := lockStructureLink(ctx, tx, proteinID, structureID); err != nil {
			return err
		}
		return tx.DetachStructure(ctx, proteinID, structureID)
	})
}
