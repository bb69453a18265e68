package store

import (
	"context"

	"github.com/emrgen/bioref/internal/model"
)

type Store interface {
	OntologyTermStore
	OrganismStore
	StructureStore
	EntityStore
	RelationStore
	// ForUpdate returns a store whose reads lock the returned rows until the
	// surrounding transaction ends.
	ForUpdate() Store
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type OntologyTermStore interface {
	// CreateOntologyTerm creates a new term.
	CreateOntologyTerm(ctx context.Context, term *model.OntologyTerm) error
	// GetOntologyTerm retrieves a term by ID.
	GetOntologyTerm(ctx context.Context, id string) (*model.OntologyTerm, error)
	// GetOntologyTermByGoID retrieves a term by its GO accession.
	GetOntologyTermByGoID(ctx context.Context, goID string) (*model.OntologyTerm, error)
	// ListOntologyTerms retrieves terms, optionally restricted to one category.
	ListOntologyTerms(ctx context.Context, category *model.Category) ([]*model.OntologyTerm, error)
	// UpdateOntologyTerm saves a term.
	UpdateOntologyTerm(ctx context.Context, term *model.OntologyTerm) error
	// DeleteOntologyTerm deletes a term by ID.
	DeleteOntologyTerm(ctx context.Context, id string) error
	// CountTermAnnotations counts the annotation edges pointing at a term.
	CountTermAnnotations(ctx context.Context, termID string) (int64, error)
}

type OrganismStore interface {
	// CreateOrganism creates a new organism.
	CreateOrganism(ctx context.Context, org *model.Organism) error
	// GetOrganism retrieves an organism by ID.
	GetOrganism(ctx context.Context, id string) (*model.Organism, error)
	// GetOrganismByBinaryName retrieves an organism by its scientific name.
	GetOrganismByBinaryName(ctx context.Context, name string) (*model.Organism, error)
	// ListOrganisms retrieves every organism.
	ListOrganisms(ctx context.Context) ([]*model.Organism, error)
	// UpdateOrganism saves an organism.
	UpdateOrganism(ctx context.Context, org *model.Organism) error
	// DeleteOrganism deletes an organism by ID.
	DeleteOrganism(ctx context.Context, id string) error
	// CountOrganismReferences counts the genes and proteins of an organism.
	CountOrganismReferences(ctx context.Context, id string) (int64, error)
}

type StructureStore interface {
	// CreateStructure creates a new structure record.
	CreateStructure(ctx context.Context, s *model.Structure) error
	// GetStructure retrieves a structure by ID.
	GetStructure(ctx context.Context, id string) (*model.Structure, error)
	// ListStructures retrieves structures, optionally by accession.
	ListStructures(ctx context.Context, accession string) ([]*model.Structure, error)
	// DeleteStructure deletes a structure by ID.
	DeleteStructure(ctx context.Context, id string) error
	// AttachStructure links a protein to a structure. Linking twice is a no-op.
	AttachStructure(ctx context.Context, proteinID, structureID string) error
	// DetachStructure removes the link between a protein and a structure.
	DetachStructure(ctx context.Context, proteinID, structureID string) error
	// ListProteinStructures retrieves the structures of a protein.
	ListProteinStructures(ctx context.Context, proteinID string) ([]*model.Structure, error)
	// ListStructureProteins retrieves the proteins covered by a structure.
	ListStructureProteins(ctx context.Context, structureID string) ([]*model.Protein, error)
}

// ProteinFilter restricts ListProteins. Empty fields match everything.
type ProteinFilter struct {
	OrganismID string
	GeneID     string
}

// IsoformCount is the number of canonical isoforms of a gene.
type IsoformCount struct {
	GeneID    string
	Proteins  int64
	Canonical int64
}

type EntityStore interface {
	// CreateGene creates a new gene.
	CreateGene(ctx context.Context, gene *model.Gene) error
	// GetGene retrieves a gene by ID with its organism.
	GetGene(ctx context.Context, id string) (*model.Gene, error)
	// GetGeneByExternalID retrieves a gene by its external id.
	GetGeneByExternalID(ctx context.Context, externalID string) (*model.Gene, error)
	// ListGenes retrieves genes, optionally of one organism.
	ListGenes(ctx context.Context, organismID string) ([]*model.Gene, error)
	// UpdateGene saves a gene.
	UpdateGene(ctx context.Context, gene *model.Gene) error
	// DeleteGene deletes a gene by ID.
	DeleteGene(ctx context.Context, id string) error
	// CountGeneProteins counts the proteins of a gene.
	CountGeneProteins(ctx context.Context, geneID string) (int64, error)

	// CreateProtein creates a new protein.
	CreateProtein(ctx context.Context, protein *model.Protein) error
	// GetProtein retrieves a protein by ID with its organism and gene.
	GetProtein(ctx context.Context, id string) (*model.Protein, error)
	// GetProteinByExternalID retrieves a protein by its external id.
	GetProteinByExternalID(ctx context.Context, externalID string) (*model.Protein, error)
	// ListProteins retrieves proteins matching the filter.
	ListProteins(ctx context.Context, filter ProteinFilter) ([]*model.Protein, error)
	// UpdateProtein saves a protein.
	UpdateProtein(ctx context.Context, protein *model.Protein) error
	// DeleteProtein deletes a protein by ID.
	DeleteProtein(ctx context.Context, id string) error
	// ListIsoformCounts reports protein and canonical isoform counts per gene.
	ListIsoformCounts(ctx context.Context) ([]*IsoformCount, error)

	// ResolveVariant finds which variant an entity id belongs to.
	ResolveVariant(ctx context.Context, id string) (model.Variant, error)
}

// MisplacedAnnotation is an annotation edge whose term category does not
// match the slot of the table it is stored in.
type MisplacedAnnotation struct {
	Table    string
	EntityID string
	TermID   string
}

type RelationStore interface {
	// AddAnnotation attaches a term to an entity slot. Attaching twice is a no-op.
	AddAnnotation(ctx context.Context, v model.Variant, slot model.Slot, entityID, termID string) error
	// RemoveAnnotation detaches a term from an entity slot.
	RemoveAnnotation(ctx context.Context, v model.Variant, slot model.Slot, entityID, termID string) error
	// ListAnnotations retrieves the terms of an entity slot.
	ListAnnotations(ctx context.Context, v model.Variant, slot model.Slot, entityID string) ([]*model.OntologyTerm, error)
	// AddEdge stores a symmetric edge. Adding a↔b and b↔a yields one row.
	AddEdge(ctx context.Context, v model.Variant, r model.Relation, a, b string) error
	// RemoveEdge removes a symmetric edge.
	RemoveEdge(ctx context.Context, v model.Variant, r model.Relation, a, b string) error
	// ListEdges retrieves the ids of the entities related to id.
	ListEdges(ctx context.Context, v model.Variant, r model.Relation, id string) ([]string, error)
	// DeleteEntityEdges removes every annotation, relation and structure edge of an entity.
	DeleteEntityEdges(ctx context.Context, v model.Variant, id string) error
	// ListMisplacedAnnotations finds annotation edges that break the slot category rule.
	ListMisplacedAnnotations(ctx context.Context) ([]*MisplacedAnnotation, error)
}
