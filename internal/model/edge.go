package model

import "time"

// Relation is a symmetric self referential relation between entities of one variant.
type Relation string

const (
	RelationInteraction Relation = "interaction"
	RelationHomologue   Relation = "homologue"
)

// Relations returns every self referential relation.
func Relations() []Relation {
	return []Relation{RelationInteraction, RelationHomologue}
}

// AnnotationEdge attaches a GO term to an entity. The table it lives in
// decides the variant and the slot, see AnnotationTable.
type AnnotationEdge struct {
	EntityID  string `gorm:"primaryKey;size:36;not null"`
	TermID    string `gorm:"primaryKey;size:36;not null"`
	CreatedAt time.Time
}

// EntityEdge is an undirected edge stored with the lower id in EntityIDA.
type EntityEdge struct {
	EntityIDA string `gorm:"column:entity_id_a;primaryKey;size:36;not null"`
	EntityIDB string `gorm:"column:entity_id_b;primaryKey;size:36;not null"`
	CreatedAt time.Time
}

// NewEntityEdge orders the endpoints so that a↔b and b↔a map to the same row.
func NewEntityEdge(a, b string) EntityEdge {
	if b < a {
		a, b = b, a
	}
	return EntityEdge{EntityIDA: a, EntityIDB: b}
}

// Other returns the endpoint of the edge that is not id.
func (e EntityEdge) Other(id string) string {
	if e.EntityIDA == id {
		return e.EntityIDB
	}
	return e.EntityIDA
}

var slotSuffix = map[Slot]string{
	SlotCellularComponent: "cc",
	SlotBiologicalProcess: "bp",
	SlotMolecularFunction: "mf",
}

// AnnotationTable returns the association table of a variant and slot, e.g. gene_go_cc.
func AnnotationTable(v Variant, s Slot) string {
	return string(v) + "_go_" + slotSuffix[s]
}

// RelationTable returns the edge table of a variant and relation, e.g. protein_interaction.
func RelationTable(v Variant, r Relation) string {
	return string(v) + "_" + string(r)
}

// EntityTable returns the table that stores entities of the variant.
func EntityTable(v Variant) string {
	return string(v)
}
