package model

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates every table of the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OntologyTerm{}, &Organism{}, &Structure{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Gene{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Protein{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&ProteinStructure{}); err != nil {
		return err
	}

	for _, v := range Variants() {
		for _, s := range Slots() {
			table := AnnotationTable(v, s)
			if err := db.Table(table).AutoMigrate(&AnnotationEdge{}); err != nil {
				return err
			}
			if err := createIndex(db, table, "term_id"); err != nil {
				return err
			}
		}

		for _, r := range Relations() {
			table := RelationTable(v, r)
			if err := db.Table(table).AutoMigrate(&EntityEdge{}); err != nil {
				return err
			}
			if err := createIndex(db, table, "entity_id_b"); err != nil {
				return err
			}
		}
	}

	logrus.Debugf("schema migrated")

	return nil
}

// the association structs are shared between tables, so their secondary
// indexes are named per table here instead of through struct tags
func createIndex(db *gorm.DB, table, column string) error {
	name := fmt.Sprintf("idx_%s_%s", table, column)
	return db.Exec(fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, table, column)).Error
}
