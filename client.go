package bioref

import (
	"io"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/config"
	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/service"
	"github.com/emrgen/bioref/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	Config = config.Config
	Cache  = cache.Cache

	OntologyTerm = model.OntologyTerm
	Organism     = model.Organism
	Structure    = model.Structure
	Gene         = model.Gene
	Protein      = model.Protein
	Category     = model.Category
	Slot         = model.Slot

	OntologyTermService = service.OntologyTermService
	OrganismService     = service.OrganismService
	StructureService    = service.StructureService
	GeneService         = service.GeneService
	ProteinService      = service.ProteinService
	RelationService     = service.RelationService

	CreateOntologyTermRequest = service.CreateOntologyTermRequest
	UpdateOntologyTermRequest = service.UpdateOntologyTermRequest
	CreateOrganismRequest     = service.CreateOrganismRequest
	UpdateOrganismRequest     = service.UpdateOrganismRequest
	EntityFields              = service.EntityFields
	CreateGeneRequest         = service.CreateGeneRequest
	UpdateGeneRequest         = service.UpdateGeneRequest
	CreateProteinRequest      = service.CreateProteinRequest
	UpdateProteinRequest      = service.UpdateProteinRequest
	ProteinFilter             = store.ProteinFilter
	ImportResult              = service.ImportResult
)

var (
	ErrDuplicateKey     = service.ErrDuplicateKey
	ErrNotFound         = service.ErrNotFound
	ErrCategoryMismatch = service.ErrCategoryMismatch
	ErrTypeMismatch     = service.ErrTypeMismatch
	ErrSelfLoop         = service.ErrSelfLoop
	ErrConflict         = service.ErrConflict
	ErrUnavailable      = service.ErrUnavailable
	ErrInvalidArgument  = service.ErrInvalidArgument

	IsRetryable = service.IsRetryable
	LoadConfig  = config.Load
)

// Client bundles the services of the reference schema over one database.
type Client struct {
	Terms      *OntologyTermService
	Organisms  *OrganismService
	Structures *StructureService
	Genes      *GeneService
	Proteins   *ProteinService
	Relations  *RelationService

	db    *gorm.DB
	cache Cache
	store store.Store
}

var _ io.Closer = (*Client)(nil)

// Open connects to the database and cache named by cfg.
func Open(cfg *Config) (*Client, error) {
	db, err := config.OpenDb(cfg)
	if err != nil {
		return nil, err
	}
	return New(db, config.GetCache(cfg)), nil
}

// New builds a client over an open database. A nil cache disables caching.
func New(db *gorm.DB, c Cache) *Client {
	if c == nil {
		c = cache.NewNop()
	}
	s := store.NewGormStore(db)

	return &Client{
		Terms:      service.NewOntologyTermService(s, c),
		Organisms:  service.NewOrganismService(s, c),
		Structures: service.NewStructureService(s),
		Genes:      service.NewGeneService(s),
		Proteins:   service.NewProteinService(s),
		Relations:  service.NewRelationService(s),
		db:         db,
		cache:      c,
		store:      s,
	}
}

// Migrate creates or updates every table of the schema.
func (c *Client) Migrate() error {
	return c.store.Migrate()
}

// Store exposes the storage layer to background jobs.
func (c *Client) Store() store.Store {
	return c.store
}

func (c *Client) Cache() Cache {
	return c.cache
}

func (c *Client) Close() error {
	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logrus.Warnf("failed to close cache: %v", err)
		}
	}

	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
