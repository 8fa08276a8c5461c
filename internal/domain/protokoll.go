package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Protokoll is a dated per-patient fluid-intake log header. It is owned by
// exactly one Pfleger (ErstellerID). The pair (Patient, Datum) is unique
// across all Protokolle.
type Protokoll struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	ErstellerID string    `gorm:"type:char(36);index;not null"`
	Patient     string    `gorm:"type:varchar(100);uniqueIndex:idx_patient_datum;not null"`
	Datum       time.Time `gorm:"type:date;uniqueIndex:idx_patient_datum;not null"`
	Public      bool      `gorm:"not null;default:false"`
	Closed      bool      `gorm:"not null;default:false"`
	// The original model tracks updatedAt only, no createdAt.
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (p *Protokoll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
