package model

import (
	"time"
)

// Variant names a concrete kind of biological entity.
// Relation tables are kept per variant so an edge can never join a gene to a protein.
type Variant string

const (
	VariantGene    Variant = "gene"
	VariantProtein Variant = "protein"
)

// Variants returns the concrete entity variants.
func Variants() []Variant {
	return []Variant{VariantGene, VariantProtein}
}

func (v Variant) Valid() bool {
	return v == VariantGene || v == VariantProtein
}

func (v Variant) String() string {
	return string(v)
}

// Entity holds the attributes shared by genes and proteins.
// It is embedded by value and never stored on its own.
type Entity struct {
	ID          string  `gorm:"primaryKey;size:36;not null"`
	OrganismID  string  `gorm:"size:36;not null;index"`
	ExternalID  string  `gorm:"size:15;not null;uniqueIndex"` // stable cross database id, e.g. ENSG00000164106
	DisplayName string  `gorm:"size:30;not null"`
	Sequence    *string `gorm:"size:3000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label renders the entity the way curators refer to it, e.g. DMT1_human.
func (e *Entity) Label(org *Organism) string {
	if org == nil {
		return e.DisplayName
	}
	return e.DisplayName + "_" + org.String()
}

// Gene is the root of its protein isoforms.
type Gene struct {
	Entity
	Organism *Organism `gorm:"foreignKey:OrganismID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Gene) TableName() string {
	return "gene"
}

func (g *Gene) Variant() Variant {
	return VariantGene
}

// Protein is a gene product. Several proteins of one gene model its isoforms.
type Protein struct {
	Entity
	Organism           *Organism `gorm:"foreignKey:OrganismID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	UniprotEntryName   string    `gorm:"size:20"`
	ProteinName        string    `gorm:"size:50"`
	GeneID             string    `gorm:"size:36;not null;index"`
	Gene               *Gene     `gorm:"foreignKey:GeneID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	IsCanonicalIsoform bool      `gorm:"not null;default:false"` // favoured isoform of the gene
	UniprotID          string    `gorm:"size:20;not null"`
}

func (Protein) TableName() string {
	return "protein"
}

func (p *Protein) Variant() Variant {
	return VariantProtein
}
