package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
)

// MigrateDB brings the schema up to date for all entity models. The unique
// indexes (pfleger name, protokoll patient+datum) are declared as gorm tags
// on the models and created here.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.Pfleger{},
		&domain.Protokoll{},
		&domain.Eintrag{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
