package service

import (
	"context"
	"errors"

	"github.com/emrgen/bioref/internal/cache"
	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const entityOntologyTerm = "ontology_term"

// NewOntologyTermService creates a new OntologyTermService.
func NewOntologyTermService(store store.Store, cache cache.Cache) *OntologyTermService {
	return &OntologyTermService{
		store: store,
		cache: cache,
	}
}

// OntologyTermService manages the GO term registry.
type OntologyTermService struct {
	store store.Store
	cache cache.Cache
}

type CreateOntologyTermRequest struct {
	GoID        string
	Description string
	Category    *model.Category
}

func (r *CreateOntologyTermRequest) term() (*model.OntologyTerm, error) {
	goID, err := required(entityOntologyTerm, "go_id", r.GoID, maxGoID)
	if err != nil {
		return nil, err
	}
	description, err := required(entityOntologyTerm, "description", r.Description, 0)
	if err != nil {
		return nil, err
	}
	if r.Category != nil && !r.Category.Valid() {
		return nil, invalid(entityOntologyTerm, "category", string(*r.Category), "is not a GO category")
	}

	return &model.OntologyTerm{
		ID:          uuid.New().String(),
		GoID:        goID,
		Description: description,
		Category:    r.Category,
	}, nil
}

// Create registers a new term. The GO accession must be unused.
func (s *OntologyTermService) Create(ctx context.Context, request *CreateOntologyTermRequest) (*model.OntologyTerm, error) {
	term, err := request.term()
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateOntologyTerm(ctx, term); err != nil {
		return nil, err
	}

	logrus.Infof("created ontology term %s (%s)", term.GoID, term.CategoryName())

	return term, nil
}

// Get retrieves a term by ID.
func (s *OntologyTermService) Get(ctx context.Context, id string) (*model.OntologyTerm, error) {
	return s.store.GetOntologyTerm(ctx, id)
}

// GetByGoID retrieves a term by its GO accession, reading through the cache.
func (s *OntologyTermService) GetByGoID(ctx context.Context, goID string) (*model.OntologyTerm, error) {
	var cached model.OntologyTerm
	ok, err := s.cache.Get(ctx, cache.TermKey(goID), &cached)
	if err != nil {
		logrus.Warnf("ontology term cache get %s: %v", goID, err)
	}
	if ok {
		return &cached, nil
	}

	term, err := s.store.GetOntologyTermByGoID(ctx, goID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.TermKey(goID), term); err != nil {
		logrus.Warnf("ontology term cache set %s: %v", goID, err)
	}

	return term, nil
}

// List retrieves all terms, or the terms of one category.
func (s *OntologyTermService) List(ctx context.Context, category *model.Category) ([]*model.OntologyTerm, error) {
	return s.store.ListOntologyTerms(ctx, category)
}

type UpdateOntologyTermRequest struct {
	ID          string
	Description *string
	// Category replaces the category when set; ClearCategory removes it.
	Category      *model.Category
	ClearCategory bool
}

// Update changes the description or category of a term. The category of a
// term that is already used by annotations cannot change, since the existing
// edges would no longer match their slot.
func (s *OntologyTermService) Update(ctx context.Context, request *UpdateOntologyTermRequest) (*model.OntologyTerm, error) {
	var description string
	var err error
	if request.Description != nil {
		if description, err = required(entityOntologyTerm, "description", *request.Description, 0); err != nil {
			return nil, err
		}
	}
	if request.Category != nil && !request.Category.Valid() {
		return nil, invalid(entityOntologyTerm, "category", string(*request.Category), "is not a GO category")
	}

	var term *model.OntologyTerm
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		term, err = tx.ForUpdate().GetOntologyTerm(ctx, request.ID)
		if err != nil {
			return err
		}

		category := term.Category
		switch {
		case request.ClearCategory:
			category = nil
		case request.Category != nil:
			category = request.Category
		}

		if !sameCategory(term.Category, category) {
			count, err := tx.CountTermAnnotations(ctx, term.ID)
			if err != nil {
				return err
			}
			if count > 0 {
				return &store.Error{Kind: ErrConflict, Entity: entityOntologyTerm, Field: "category", Value: term.GoID,
					Err: errors.New("term is used by annotations")}
			}
			term.Category = category
		}

		if request.Description != nil {
			term.Description = description
		}

		return tx.UpdateOntologyTerm(ctx, term)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, term.GoID)

	return term, nil
}

// Delete removes a term that no annotation refers to.
func (s *OntologyTermService) Delete(ctx context.Context, id string) error {
	var term *model.OntologyTerm
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		term, err = tx.ForUpdate().GetOntologyTerm(ctx, id)
		if err != nil {
			return err
		}

		count, err := tx.CountTermAnnotations(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return &store.Error{Kind: ErrConflict, Entity: entityOntologyTerm, Field: "id", Value: term.GoID,
				Err: errors.New("term is used by annotations")}
		}

		return tx.DeleteOntologyTerm(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, term.GoID)
	logrus.Infof("deleted ontology term %s", term.GoID)

	return nil
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Created int
	Skipped int
}

const importBatchSize = 500

// Import creates every term whose GO accession is not registered yet.
// Terms are written in batches, each batch in its own transaction; a failed
// batch aborts the import and leaves earlier batches in place.
func (s *OntologyTermService) Import(ctx context.Context, requests []*CreateOntologyTermRequest) (*ImportResult, error) {
	result := &ImportResult{}

	for start := 0; start < len(requests); start += importBatchSize {
		end := min(start+importBatchSize, len(requests))

		var created, skipped int
		err := s.store.Transaction(ctx, func(tx store.Store) error {
			created, skipped = 0, 0
			for _, request := range requests[start:end] {
				term, err := request.term()
				if err != nil {
					return err
				}

				_, err = tx.GetOntologyTermByGoID(ctx, term.GoID)
				if err == nil {
					skipped++
					continue
				}
				if !errors.Is(err, ErrNotFound) {
					return err
				}

				if err := tx.CreateOntologyTerm(ctx, term); err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			return result, err
		}

		result.Created += created
		result.Skipped += skipped
		logrus.Infof("imported ontology terms %d-%d: %d created, %d skipped", start, end, created, skipped)
	}

	return result, nil
}

func (s *OntologyTermService) invalidate(ctx context.Context, goID string) {
	if err := s.cache.Delete(ctx, cache.TermKey(goID)); err != nil {
		logrus.Warnf("ontology term cache delete %s: %v", goID, err)
	}
}

func sameCategory(a, b *model.Category) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
