package service

import (
	"context"
	"fmt"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const entityOrganism = "organism"

// NewOrganismService creates a new OrganismService.
func NewOrganismService(store store.Store, cache cache.Cache) *OrganismService {
	return &OrganismService{
		store: store,
		cache: cache,
	}
}

// OrganismService manages the organism registry.
type OrganismService struct {
	store store.Store
	cache cache.Cache
}

type CreateOrganismRequest struct {
	BinaryName string
	ShortName  string
}

// Create registers a species under its unique scientific name.
func (s *OrganismService) Create(ctx context.Context, request *CreateOrganismRequest) (*model.Organism, error) {
	binaryName, err := required(entityOrganism, "binary_name", request.BinaryName, maxBinaryName)
	if err != nil {
		return nil, err
	}
	shortName, err := required(entityOrganism, "short_name", request.ShortName, maxShortName)
	if err != nil {
		return nil, err
	}

	org := &model.Organism{
		ID:         uuid.New().String(),
		BinaryName: binaryName,
		ShortName:  shortName,
	}
	if err := s.store.CreateOrganism(ctx, org); err != nil {
		return nil, err
	}

	logrus.Infof("created organism %s (%s)", org.BinaryName, org.ShortName)

	return org, nil
}

// Get retrieves an organism by ID.
func (s *OrganismService) Get(ctx context.Context, id string) (*model.Organism, error) {
	return s.store.GetOrganism(ctx, id)
}

// GetByBinaryName retrieves an organism by its scientific name, reading through the cache.
func (s *OrganismService) GetByBinaryName(ctx context.Context, name string) (*model.Organism, error) {
	var cached model.Organism
	ok, err := s.cache.Get(ctx, cache.OrganismKey(name), &cached)
	if err != nil {
		logrus.Warnf("organism cache get %s: %v", name, err)
	}
	if ok {
		return &cached, nil
	}

	org, err := s.store.GetOrganismByBinaryName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.OrganismKey(name), org); err != nil {
		logrus.Warnf("organism cache set %s: %v", name, err)
	}

	return org, nil
}

// List retrieves every organism ordered by scientific name.
func (s *OrganismService) List(ctx context.Context) ([]*model.Organism, error) {
	return s.store.ListOrganisms(ctx)
}

type UpdateOrganismRequest struct {
	ID        string
	ShortName *string
}

// Update changes the short name of an organism.
func (s *OrganismService) Update(ctx context.Context, request *UpdateOrganismRequest) (*model.Organism, error) {
	var shortName string
	var err error
	if request.ShortName != nil {
		if shortName, err = required(entityOrganism, "short_name", *request.ShortName, maxShortName); err != nil {
			return nil, err
		}
	}

	var org *model.Organism
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		org, err = tx.ForUpdate().GetOrganism(ctx, request.ID)
		if err != nil {
			return err
		}
		if request.ShortName != nil {
			org.ShortName = shortName
		}
		return tx.UpdateOrganism(ctx, org)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, org.BinaryName)

	return org, nil
}

// Delete removes an organism that no gene or protein refers to.
func (s *OrganismService) Delete(ctx context.Context, id string) error {
	var org *model.Organism
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		org, err = tx.ForUpdate().GetOrganism(ctx, id)
		if err != nil {
			return err
		}

		count, err := tx.CountOrganismReferences(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &store.Error{Kind: ErrConflict, Entity: entityOrganism, Field: "id", Value: org.BinaryName,
				Err: fmt.Errorf("referenced by %d genes and proteins", count)}
		}

		return tx.DeleteOrganism(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, org.BinaryName)
	logrus.Infof("deleted organism %s", org.BinaryName)

	return nil
}

func (s *OrganismService) invalidate(ctx context.Context, binaryName string) {
	if err := s.cache.Delete(ctx, cache.OrganismKey(binaryName)); err != nil {
		logrus.Warnf("organism cache delete %s: %v", binaryName, err)
	}
}

// lookupOrganism resolves the organism an entity refers to.
func lookupOrganism(ctx context.Context, tx store.Store, entity, id string) (*model.Organism, error) {
	org, err := tx.GetOrganism(ctx, id)
	if err != nil {
		return nil, refNotFound(err, entity, "organism_id", id)
	}
	return org, nil
}
