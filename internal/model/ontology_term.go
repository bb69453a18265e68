package model

import (
	"fmt"
	"time"
)

// OntologyTerm is a Gene Ontology term, e.g. GO:0005886 "plasma membrane".
type OntologyTerm struct {
	ID          string    `gorm:"primaryKey;size:36;not null"`
	GoID        string    `gorm:"size:20;not null;uniqueIndex"`
	Description string    `gorm:"type:text;not null"`
	Category    *Category `gorm:"size:2"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OntologyTerm) TableName() string {
	return "ontology_term"
}

func (t *OntologyTerm) String() string {
	return fmt.Sprintf("%s (%s)", t.GoID, t.Description)
}

// CategoryName returns the long category name or an empty string for terms without one.
func (t *OntologyTerm) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return t.Category.Name()
}
