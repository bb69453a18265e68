package model

import (
	"fmt"
	"strings"
)

// Category is the Gene Ontology namespace a term belongs to.
// Values are persisted with the two letter codes used by the GO annotation files.
type Category string

const (
	CategoryCellularComponent Category = "cc"
	CategoryBiologicalProcess Category = "bp"
	CategoryMolecularFunction Category = "mf"
)

var categories = []Category{
	CategoryCellularComponent,
	CategoryBiologicalProcess,
	CategoryMolecularFunction,
}

// Categories returns every known category in slot order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	switch c {
	case CategoryCellularComponent, CategoryBiologicalProcess, CategoryMolecularFunction:
		return true
	}
	return false
}

// Name returns the long form of the category, e.g. CellularComponent.
func (c Category) Name() string {
	switch c {
	case CategoryCellularComponent:
		return "CellularComponent"
	case CategoryBiologicalProcess:
		return "BiologicalProcess"
	case CategoryMolecularFunction:
		return "MolecularFunction"
	}
	return string(c)
}

func (c Category) String() string {
	return c.Name()
}

// ParseCategory accepts the short code (cc), the long name (CellularComponent),
// the GAF aspect letter (C) or the OBO namespace (cellular_component).
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", " ", "", "-", "").Replace(strings.TrimSpace(s)))
	switch key {
	case "cc", "cellularcomponent", "c":
		return CategoryCellularComponent, nil
	case "bp", "biologicalprocess", "p":
		return CategoryBiologicalProcess, nil
	case "mf", "molecularfunction", "f":
		return CategoryMolecularFunction, nil
	}
	return "", fmt.Errorf("unknown ontology category %q", s)
}

// Slot names one of the three GO annotation slots of an entity. A slot only
// accepts terms of the matching category.
type Slot string

const (
	SlotCellularComponent Slot = "cellular_component"
	SlotBiologicalProcess Slot = "biological_process"
	SlotMolecularFunction Slot = "molecular_function"
)

// Slots returns the annotation slots in table order.
func Slots() []Slot {
	return []Slot{SlotCellularComponent, SlotBiologicalProcess, SlotMolecularFunction}
}

// Category returns the only term category the slot accepts.
func (s Slot) Category() Category {
	switch s {
	case SlotCellularComponent:
		return CategoryCellularComponent
	case SlotBiologicalProcess:
		return CategoryBiologicalProcess
	case SlotMolecularFunction:
		return CategoryMolecularFunction
	}
	return ""
}

func (s Slot) Valid() bool {
	return s.Category() != ""
}

// Accepts reports whether a term with the given category may be placed in the slot.
// Terms without a category fit no slot.
func (s Slot) Accepts(c *Category) bool {
	return c != nil && s.Valid() && *c == s.Category()
}

// ParseSlot accepts the slot name or anything ParseCategory understands.
func ParseSlot(s string) (Slot, error) {
	c, err := ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("unknown annotation slot %q", s)
	}
	return SlotFor(c), nil
}

// SlotFor returns the slot that holds terms of category c.
func SlotFor(c Category) Slot {
	switch c {
	case CategoryCellularComponent:
		return SlotCellularComponent
	case CategoryBiologicalProcess:
		return SlotBiologicalProcess
	case CategoryMolecularFunction:
		return SlotMolecularFunction
	}
	return ""
}
