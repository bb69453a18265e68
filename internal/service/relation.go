package service

import (
	"context"
	"fmt"

	"github.com/emrgen/bioref/internal/model"
	"github.com/emrgen/bioref/internal/store"
	"github.com/sirupsen/logrus"
)

// NewRelationService creates a new RelationService.
func NewRelationService(store store.Store) *RelationService {
	return &RelationService{
		store: store,
	}
}

// RelationService manages GO annotations and the symmetric interaction and
// homologue edges of genes and proteins. Callers pass bare entity ids; the
// variant of each id is resolved from the store.
type RelationService struct {
	store store.Store
}

// Annotate places a term in one of the GO slots of an entity. The term
// category must match the slot. Annotating twice is a no-op.
func (s *RelationService) Annotate(ctx context.Context, entityID string, slot model.Slot, termID string) error {
	if !slot.Valid() {
		return invalid("annotation", "slot", string(slot), "is not an annotation slot")
	}

	return s.store.Transaction(ctx, func(tx store.Store) error {
		v, err := lockEntity(ctx, tx, "annotation", "entity_id", entityID)
		if err != nil {
			return err
		}

		term, err := tx.ForUpdate().GetOntologyTerm(ctx, termID)
		if err != nil {
			return refNotFound(err, "annotation", "term_id", termID)
		}
		if !slot.Accepts(term.Category) {
			return &store.Error{Kind: ErrCategoryMismatch, Entity: model.AnnotationTable(v, slot), Field: "term_id", Value: term.GoID,
				Err: fmt.Errorf("%s term cannot be placed in the %s slot", term.CategoryName(), slot)}
		}

		if err := tx.AddAnnotation(ctx, v, slot, entityID, term.ID); err != nil {
			return err
		}

		logrus.Debugf("annotated %s %s with %s in %s", v, entityID, term.GoID, slot)
		return nil
	})
}

// Unannotate removes a term from a GO slot of an entity. Removing a missing
// annotation is a no-op.
func (s *RelationService) Unannotate(ctx context.Context, entityID string, slot model.Slot, termID string) error {
	if !slot.Valid() {
		return invalid("annotation", "slot", string(slot), "is not an annotation slot")
	}

	return s.store.Transaction(ctx, func(tx store.Store) error {
		v, err := lockEntity(ctx, tx, "annotation", "entity_id", entityID)
		if err != nil {
			return err
		}
		return tx.RemoveAnnotation(ctx, v, slot, entityID, termID)
	})
}

// Annotations retrieves the terms placed in a GO slot of an entity.
func (s *RelationService) Annotations(ctx context.Context, entityID string, slot model.Slot) ([]*model.OntologyTerm, error) {
	if !slot.Valid() {
		return nil, invalid("annotation", "slot", string(slot), "is not an annotation slot")
	}

	v, err := s.store.ResolveVariant(ctx, entityID)
	if err != nil {
		return nil, refNotFound(err, "annotation", "entity_id", entityID)
	}
	return s.store.ListAnnotations(ctx, v, slot, entityID)
}

// LinkInteraction records that a and b interact.
func (s *RelationService) LinkInteraction(ctx context.Context, a, b string) error {
	return s.link(ctx, model.RelationInteraction, a, b)
}

// UnlinkInteraction removes the interaction between a and b.
func (s *RelationService) UnlinkInteraction(ctx context.Context, a, b string) error {
	return s.unlink(ctx, model.RelationInteraction, a, b)
}

// Interactions retrieves the ids of the entities interacting with id.
func (s *RelationService) Interactions(ctx context.Context, id string) ([]string, error) {
	return s.edges(ctx, model.RelationInteraction, id)
}

// LinkHomologue records that a and b are homologues.
func (s *RelationService) LinkHomologue(ctx context.Context, a, b string) error {
	return s.link(ctx, model.RelationHomologue, a, b)
}

// UnlinkHomologue removes the homology between a and b.
func (s *RelationService) UnlinkHomologue(ctx context.Context, a, b string) error {
	return s.unlink(ctx, model.RelationHomologue, a, b)
}

// Homologues retrieves the ids of the homologues of id.
func (s *RelationService) Homologues(ctx context.Context, id string) ([]string, error) {
	return s.edges(ctx, model.RelationHomologue, id)
}

// link stores the edge a↔b once, whichever side is given first.
func (s *RelationService) link(ctx context.Context, r model.Relation, a, b string) error {
	return s.store.Transaction(ctx, func(tx store.Store) error {
		v, err := lockPair(ctx, tx, r, a, b)
		if err != nil {
			return err
		}
		if err := tx.AddEdge(ctx, v, r, a, b); err != nil {
			return err
		}

		logrus.Debugf("linked %s %s %s-%s", v, r, a, b)
		return nil
	})
}

func (s *RelationService) unlink(ctx context.Context, r model.Relation, a, b string) error {
	return s.store.Transaction(ctx, func(tx store.Store) error {
		v, err := lockPair(ctx, tx, r, a, b)
		if err != nil {
			return err
		}
		return tx.RemoveEdge(ctx, v, r, a, b)
	})
}

func (s *RelationService) edges(ctx context.Context, r model.Relation, id string) ([]string, error) {
	v, err := s.store.ResolveVariant(ctx, id)
	if err != nil {
		return nil, refNotFound(err, string(r), "id", id)
	}
	return s.store.ListEdges(ctx, v, r, id)
}

// lockPair checks that a and b are distinct entities of the same variant and
// locks both rows in canonical order.
func lockPair(ctx context.Context, tx store.Store, r model.Relation, a, b string) (model.Variant, error) {
	if a == b {
		return "", &store.Error{Kind: ErrSelfLoop, Entity: string(r), Field: "entity_id_b", Value: b,
			Err: fmt.Errorf("%s cannot be linked to itself", a)}
	}

	va, err := tx.ResolveVariant(ctx, a)
	if err != nil {
		return "", refNotFound(err, string(r), "entity_id_a", a)
	}
	vb, err := tx.ResolveVariant(ctx, b)
	if err != nil {
		return "", refNotFound(err, string(r), "entity_id_b", b)
	}
	if va != vb {
		return "", &store.Error{Kind: ErrTypeMismatch, Entity: string(r), Field: "entity_id_b", Value: b,
			Err: fmt.Errorf("cannot link %s to %s", va, vb)}
	}

	edge := model.NewEntityEdge(a, b)
	if err := lockVariant(ctx, tx, va, edge.EntityIDA); err != nil {
		return "", err
	}
	if err := lockVariant(ctx, tx, va, edge.EntityIDB); err != nil {
		return "", err
	}

	return va, nil
}

// lockEntity resolves the variant of id and locks its row.
func lockEntity(ctx context.Context, tx store.Store, entity, field, id string) (model.Variant, error) {
	v, err := tx.ResolveVariant(ctx, id)
	if err != nil {
		return "", refNotFound(err, entity, field, id)
	}
	if err := lockVariant(ctx, tx, v, id); err != nil {
		return "", refNotFound(err, entity, field, id)
	}
	return v, nil
}

func lockVariant(ctx context.Context, tx store.Store, v model.Variant, id string) error {
	var err error
	switch v {
	case model.VariantGene:
		_, err = tx.ForUpdate().GetGene(ctx, id)
	case model.VariantProtein:
		_, err = tx.ForUpdate().GetProtein(ctx, id)
	default:
		err = fmt.Errorf("unknown entity variant %q", v)
	}
	return err
}
