package service

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/sirupsen/logrus"
)

const entityProtein = string(model.VariantProtein)

// NewProteinService creates a new ProteinService.
func NewProteinService(store store.Store) *ProteinService {
	return &ProteinService{
		store: store,
	}
}

// ProteinService manages proteins and their structure cross references.
type ProteinService struct {
	store store.Store
}

type CreateProteinRequest struct {
	EntityFields
	UniprotEntryName   string
	ProteinName        string
	GeneID             string
	IsCanonicalIsoform bool
	UniprotID          string
}

// Create registers an isoform of an existing gene.
// Several proteins of a gene may be flagged canonical; the jobs audit reports such genes.
func (s *ProteinService) Create(ctx context.Context, request *CreateProteinRequest) (*model.Protein, error) {
	entity, err := request.entity(entityProtein)
	if err != nil {
		return nil, err
	}
	geneID, err := required(entityProtein, "gene_id", request.GeneID, 0)
	if err != nil {
		return nil, err
	}
	uniprotID, err := required(entityProtein, "uniprot_id", request.UniprotID, maxUniprotID)
	if err != nil {
		return nil, err
	}
	entryName, err := optional(entityProtein, "uniprot_entry_name", request.UniprotEntryName, maxUniprotEntryName)
	if err != nil {
		return nil, err
	}
	proteinName, err := optional(entityProtein, "protein_name", request.ProteinName, maxProteinName)
	if err != nil {
		return nil, err
	}

	protein := &model.Protein{
		Entity:             entity,
		UniprotEntryName:   entryName,
		ProteinName:        proteinName,
		GeneID:             geneID,
		IsCanonicalIsoform: request.IsCanonicalIsoform,
		UniprotID:          uniprotID,
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		org, err := lookupOrganism(ctx, tx, entityProtein, protein.OrganismID)
		if err != nil {
			return err
		}
		gene, err := lookupGene(ctx, tx, protein.GeneID)
		if err != nil {
			return err
		}
		protein.Organism = org
		protein.Gene = gene

		return tx.CreateProtein(ctx, protein)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created protein %s (%s) of gene %s", protein.ExternalID, protein.UniprotID, protein.Gene.ExternalID)

	return protein, nil
}

// Get retrieves a protein by ID.
func (s *ProteinService) Get(ctx context.Context, id string) (*model.Protein, error) {
	return s.store.GetProtein(ctx, id)
}

// GetByExternalID retrieves a protein by its external id.
func (s *ProteinService) GetByExternalID(ctx context.Context, externalID string) (*model.Protein, error) {
	return s.store.GetProteinByExternalID(ctx, externalID)
}

// List retrieves the proteins matching the filter.
func (s *ProteinService) List(ctx context.Context, filter store.ProteinFilter) ([]*model.Protein, error) {
	return s.store.ListProteins(ctx, filter)
}

type UpdateProteinRequest struct {
	ID          string
	DisplayName *string
	// Sequence replaces the sequence when set; a blank value clears it.
	Sequence           *string
	UniprotEntryName   *string
	ProteinName        *string
	GeneID             *string
	IsCanonicalIsoform *bool
	UniprotID          *string
}

// Update changes the attributes of a protein. Moving it to another gene
// requires that gene to exist.
func (s *ProteinService) Update(ctx context.Context, request *UpdateProteinRequest) (*model.Protein, error) {
	var displayName, entryName, proteinName, uniprotID string
	var err error
	if request.DisplayName != nil {
		if displayName, err = required(entityProtein, "display_name", *request.DisplayName, maxDisplayName); err != nil {
			return nil, err
		}
	}
	if request.UniprotEntryName != nil {
		if entryName, err = optional(entityProtein, "uniprot_entry_name", *request.UniprotEntryName, maxUniprotEntryName); err != nil {
			return nil, err
		}
	}
	if request.ProteinName != nil {
		if proteinName, err = optional(entityProtein, "protein_name", *request.ProteinName, maxProteinName); err != nil {
			return nil, err
		}
	}
	if request.UniprotID != nil {
		if uniprotID, err = required(entityProtein, "uniprot_id", *request.UniprotID, maxUniprotID); err != nil {
			return nil, err
		}
	}
	seq, err := sequence(entityProtein, request.Sequence)
	if err != nil {
		return nil, err
	}

	var protein *model.Protein
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		protein, err = tx.ForUpdate().GetProtein(ctx, request.ID)
		if err != nil {
			return err
		}

		if request.GeneID != nil && *request.GeneID != protein.GeneID {
			gene, err := lookupGene(ctx, tx, *request.GeneID)
			if err != nil {
				return err
			}
			protein.GeneID = gene.ID
			protein.Gene = gene
		}
		if request.DisplayName != nil {
			protein.DisplayName = displayName
		}
		if request.Sequence != nil {
			protein.Sequence = seq
		}
		if request.UniprotEntryName != nil {
			protein.UniprotEntryName = entryName
		}
		if request.ProteinName != nil {
			protein.ProteinName = proteinName
		}
		if request.UniprotID != nil {
			protein.UniprotID = uniprotID
		}
		if request.IsCanonicalIsoform != nil {
			protein.IsCanonicalIsoform = *request.IsCanonicalIsoform
		}

		return tx.UpdateProtein(ctx, protein)
	})
	if err != nil {
		return nil, err
	}

	return protein, nil
}

// Delete removes a protein together with its annotations, relation edges and
// structure links.
func (s *ProteinService) Delete(ctx context.Context, id string) error {
	var protein *model.Protein
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		protein, err = tx.ForUpdate().GetProtein(ctx, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteEntityEdges(ctx, model.VariantProtein, id); err != nil {
			return err
		}
		return tx.DeleteProtein(ctx, id)
	})
	if err != nil {
		return err
	}

	logrus.Infof("deleted protein %s", protein.ExternalID)

	return nil
}

// AttachStructure links the protein to a structure. Attaching twice is a no-op.
func (s *ProteinService) AttachStructure(ctx context.Context, proteinID, structureID string) error {
	return attachStructure(ctx, s.store, proteinID, structureID)
}

// DetachStructure unlinks the protein from a structure. Detaching a missing link is a no-op.
func (s *ProteinService) DetachStructure(ctx context.Context, proteinID, structureID string) error {
	return detachStructure(ctx, s.store, proteinID, structureID)
}

// Structures retrieves the solved structures of a protein.
func (s *ProteinService) Structures(ctx context.Context, proteinID string) ([]*model.Structure, error) {
	if _, err := s.store.GetProtein(ctx, proteinID); err != nil {
		return nil, err
	}
	return s.store.ListProteinStructures(ctx, proteinID)
}

// lookupGene resolves the gene a protein refers to.
func lookupGene(ctx context.Context, tx store.Store, id string) (*model.Gene, error) {
	gene, err := tx.GetGene(ctx, id)
	if err != nil {
		return nil, refNotFound(err, entityProtein, "gene_id", id)
	}
	return gene, nil
}
