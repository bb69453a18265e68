package model

import "time"

// Organism is a species referenced by every gene and protein.
type Organism struct {
	ID         string `gorm:"primaryKey;size:36;not null"`
	BinaryName string `gorm:"size:30;not null;uniqueIndex"` // scientific name, e.g. Homo sapiens
	ShortName  string `gorm:"size:20;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Organism) TableName() string {
	return "organism"
}

func (o *Organism) String() string {
	return o.ShortName
}
