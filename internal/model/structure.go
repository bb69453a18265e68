package model

import "time"

// Structure is an entry of the protein data bank.
// A single entry can contain several proteins and a protein can have several
// solved structures, so the accession is not unique.
type Structure struct {
	ID          string `gorm:"primaryKey;size:36;not null"`
	StructureID string `gorm:"size:5;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Structure) TableName() string {
	return "structure"
}

func (s *Structure) String() string {
	return s.StructureID
}

// ProteinStructure links a protein to one of its structures.
type ProteinStructure struct {
	ProteinID   string `gorm:"primaryKey;size:36;not null"`
	StructureID string `gorm:"primaryKey;size:36;not null;index:idx_protein_structure_structure_id"`
	CreatedAt   time.Time
}

func (ProteinStructure) TableName() string {
	return "protein_structure"
}
